package models

import (
	"errors"
	"testing"
)

func TestSaveRequest_Decode(t *testing.T) {
	req := &SaveRequest{
		ProjectID:  "10",
		CatID:      "7",
		Title:      "User Login",
		Path:       "/api/user/login",
		Method:     "POST",
		Tag:        `["auth","public"]`,
		ReqQuery:   `[{"name":"redirect","required":"0"}]`,
		ReqHeaders: `[{"name":"Content-Type","value":"application/json"}]`,
	}

	payload, err := req.Decode()
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}

	if len(payload.Tag) != 2 || payload.Tag[0] != "auth" {
		t.Errorf("Tag = %v, want [auth public]", payload.Tag)
	}
	if len(payload.ReqQuery) != 1 || payload.ReqQuery[0].Name != "redirect" {
		t.Errorf("ReqQuery = %v, want one entry named redirect", payload.ReqQuery)
	}
	if payload.Title != "User Login" || payload.Method != "POST" {
		t.Errorf("scalar fields not carried over: %+v", payload)
	}
}

func TestSaveRequest_Decode_EmptyStructuredFields(t *testing.T) {
	req := &SaveRequest{ProjectID: "10", CatID: "7", Title: "t", Path: "/p", Method: "GET"}

	payload, err := req.Decode()
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if payload.Tag != nil || payload.ReqParams != nil || payload.ReqBodyForm != nil {
		t.Errorf("unset structured fields must stay nil: %+v", payload)
	}
}

func TestSaveRequest_Decode_RejectsMalformedField(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SaveRequest)
		wantField string
	}{
		{"malformed tag", func(r *SaveRequest) { r.Tag = "not-json" }, "tag"},
		{"malformed req_params", func(r *SaveRequest) { r.ReqParams = "{" }, "req_params"},
		{"malformed req_query", func(r *SaveRequest) { r.ReqQuery = "[1,2" }, "req_query"},
		{"malformed req_headers", func(r *SaveRequest) { r.ReqHeaders = "nope" }, "req_headers"},
		{"malformed req_body_form", func(r *SaveRequest) { r.ReqBodyForm = `{"a":}` }, "req_body_form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SaveRequest{ProjectID: "10", CatID: "7", Title: "t", Path: "/p", Method: "GET"}
			tt.mutate(req)

			_, err := req.Decode()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Decode() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSaveRequest_Decode_FirstMalformedFieldWins(t *testing.T) {
	req := &SaveRequest{
		ProjectID: "10", CatID: "7", Title: "t", Path: "/p", Method: "GET",
		Tag:       "broken",
		ReqParams: "also-broken",
	}

	_, err := req.Decode()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Decode() error = %v, want ValidationError", err)
	}
	if verr.Field != "tag" {
		t.Errorf("ValidationError.Field = %q, want %q (first malformed field)", verr.Field, "tag")
	}
}
