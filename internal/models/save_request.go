package models

import (
	"encoding/json"
	"fmt"
)

// SaveRequest is the flat caller-supplied parameter record for saving an
// interface. Structured sub-fields arrive JSON-encoded (the MCP boundary
// only carries scalars) and are decoded field-by-field by Decode before
// anything is submitted to the remote service.
type SaveRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	CatID     string `json:"catid" validate:"required"`
	ID        string `json:"id,omitempty"`
	Title     string `json:"title" validate:"required"`
	Path      string `json:"path" validate:"required"`
	Method    string `json:"method" validate:"required"`
	Status    string `json:"status,omitempty"`

	// JSON-encoded sub-structures, decoded by Decode.
	Tag         string `json:"tag,omitempty"`
	ReqParams   string `json:"req_params,omitempty"`
	ReqQuery    string `json:"req_query,omitempty"`
	ReqHeaders  string `json:"req_headers,omitempty"`
	ReqBodyForm string `json:"req_body_form,omitempty"`

	ReqBodyType      string `json:"req_body_type,omitempty"`
	ReqBodyOther     string `json:"req_body_other,omitempty"`
	ReqBodyIsJSONSch bool   `json:"req_body_is_json_schema,omitempty"`
	ResBodyType      string `json:"res_body_type,omitempty"`
	ResBody          string `json:"res_body,omitempty"`
	ResBodyIsJSONSch bool   `json:"res_body_is_json_schema,omitempty"`
	SwitchNotice     bool   `json:"switch_notice,omitempty"`
	APIOpened        bool   `json:"api_opened,omitempty"`
	Desc             string `json:"desc,omitempty"`
	Markdown         string `json:"markdown,omitempty"`
}

// SavePayload is the decoded, remote-shaped form of a SaveRequest, ready
// to submit to the add/up endpoints.
type SavePayload struct {
	ID               string          `json:"id,omitempty"`
	CatID            string          `json:"catid"`
	Title            string          `json:"title"`
	Path             string          `json:"path"`
	Method           string          `json:"method"`
	Status           string          `json:"status,omitempty"`
	Tag              []string        `json:"tag,omitempty"`
	ReqParams        []NameValuePair `json:"req_params,omitempty"`
	ReqQuery         []NameValuePair `json:"req_query,omitempty"`
	ReqHeaders       []NameValuePair `json:"req_headers,omitempty"`
	ReqBodyType      string          `json:"req_body_type,omitempty"`
	ReqBodyForm      []NameValuePair `json:"req_body_form,omitempty"`
	ReqBodyOther     string          `json:"req_body_other,omitempty"`
	ReqBodyIsJSONSch bool            `json:"req_body_is_json_schema,omitempty"`
	ResBodyType      string          `json:"res_body_type,omitempty"`
	ResBody          string          `json:"res_body,omitempty"`
	ResBodyIsJSONSch bool            `json:"res_body_is_json_schema,omitempty"`
	SwitchNotice     bool            `json:"switch_notice,omitempty"`
	APIOpened        bool            `json:"api_opened,omitempty"`
	Desc             string          `json:"desc,omitempty"`
	Markdown         string          `json:"markdown,omitempty"`
}

// ValidationError reports a malformed caller-supplied field. The request
// is rejected before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Decode parses every JSON-encoded sub-structure of the request. The first
// field that fails to decode aborts with a ValidationError naming it; no
// partial payload is ever produced. A malformed tag list is rejected like
// any other structured field.
func (r *SaveRequest) Decode() (*SavePayload, error) {
	p := &SavePayload{
		ID:               r.ID,
		CatID:            r.CatID,
		Title:            r.Title,
		Path:             r.Path,
		Method:           r.Method,
		Status:           r.Status,
		ReqBodyType:      r.ReqBodyType,
		ReqBodyOther:     r.ReqBodyOther,
		ReqBodyIsJSONSch: r.ReqBodyIsJSONSch,
		ResBodyType:      r.ResBodyType,
		ResBody:          r.ResBody,
		ResBodyIsJSONSch: r.ResBodyIsJSONSch,
		SwitchNotice:     r.SwitchNotice,
		APIOpened:        r.APIOpened,
		Desc:             r.Desc,
		Markdown:         r.Markdown,
	}

	if r.Tag != "" {
		if err := json.Unmarshal([]byte(r.Tag), &p.Tag); err != nil {
			return nil, &ValidationError{Field: "tag", Reason: err.Error()}
		}
	}
	if err := decodePairs("req_params", r.ReqParams, &p.ReqParams); err != nil {
		return nil, err
	}
	if err := decodePairs("req_query", r.ReqQuery, &p.ReqQuery); err != nil {
		return nil, err
	}
	if err := decodePairs("req_headers", r.ReqHeaders, &p.ReqHeaders); err != nil {
		return nil, err
	}
	if err := decodePairs("req_body_form", r.ReqBodyForm, &p.ReqBodyForm); err != nil {
		return nil, err
	}

	return p, nil
}

func decodePairs(field, raw string, dst *[]NameValuePair) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &ValidationError{Field: field, Reason: err.Error()}
	}
	return nil
}
