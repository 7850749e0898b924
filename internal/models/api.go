package models

// MenuCategory is one node of a project's category tree as returned by
// the list_menu endpoint: the category record plus its interface list.
type MenuCategory struct {
	ID        int             `json:"_id"`
	Name      string          `json:"name"`
	Desc      string          `json:"desc"`
	ProjectID int             `json:"project_id"`
	List      []MenuInterface `json:"list"`
}

// MenuInterface is the summary form of one interface inside a menu tree.
type MenuInterface struct {
	ID        int      `json:"_id"`
	Title     string   `json:"title"`
	Path      string   `json:"path"`
	Method    string   `json:"method"`
	CatID     int      `json:"catid"`
	ProjectID int      `json:"project_id"`
	Status    string   `json:"status"`
	Tag       []string `json:"tag"`
	AddTime   int64    `json:"add_time"`
	UpTime    int64    `json:"up_time"`
}

// SearchResultItem is one aggregated search hit. ProjectName and CatName
// are not present in the raw remote record; the search engine joins them
// in from the metadata cache and the menu tree.
type SearchResultItem struct {
	ID          int      `json:"_id"`
	Title       string   `json:"title"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	CatID       int      `json:"catid"`
	ProjectID   int      `json:"project_id"`
	Tag         []string `json:"tag,omitempty"`
	AddTime     int64    `json:"add_time"`
	UpTime      int64    `json:"up_time"`
	ProjectName string   `json:"project_name,omitempty"`
	CatName     string   `json:"cat_name,omitempty"`
}

// SearchResult pairs the deduplicated hit count with the returned page.
// Total counts every deduplicated hit, including those truncated away.
type SearchResult struct {
	Total int                `json:"total"`
	List  []SearchResultItem `json:"list"`
}

// NameValuePair is a named request parameter (path/header/form entries).
type NameValuePair struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Example  string `json:"example,omitempty"`
	Desc     string `json:"desc,omitempty"`
	Required string `json:"required,omitempty"`
	Type     string `json:"type,omitempty"`
}

// InterfaceDetail is the full record for a single interface as returned
// by the get endpoint.
type InterfaceDetail struct {
	ID                int             `json:"_id"`
	Title             string          `json:"title"`
	Path              string          `json:"path"`
	Method            string          `json:"method"`
	ProjectID         int             `json:"project_id"`
	CatID             int             `json:"catid"`
	Status            string          `json:"status"`
	Tag               []string        `json:"tag"`
	ReqParams         []NameValuePair `json:"req_params"`
	ReqQuery          []NameValuePair `json:"req_query"`
	ReqHeaders        []NameValuePair `json:"req_headers"`
	ReqBodyType       string          `json:"req_body_type"`
	ReqBodyForm       []NameValuePair `json:"req_body_form"`
	ReqBodyOther      string          `json:"req_body_other"`
	ReqBodyIsJSONSch  bool            `json:"req_body_is_json_schema"`
	ResBodyType       string          `json:"res_body_type"`
	ResBody           string          `json:"res_body"`
	ResBodyIsJSONSch  bool            `json:"res_body_is_json_schema"`
	Desc              string          `json:"desc"`
	Markdown          string          `json:"markdown"`
	Username          string          `json:"username"`
	AddTime           int64           `json:"add_time"`
	UpTime            int64           `json:"up_time"`
}
