package models

import "time"

// ProjectInfo is the remote platform's record for one credentialed project.
// Immutable once fetched; replaced wholesale on cache refresh.
type ProjectInfo struct {
	ID       int    `json:"_id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	BasePath string `json:"basepath"`
	GroupID  int    `json:"group_id"`
}

// CategoryInfo is one interface category within a project. The remote
// service defines the ordering of a project's categories.
type CategoryInfo struct {
	ID        int    `json:"_id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	ProjectID int    `json:"project_id"`
	AddTime   int64  `json:"add_time"`
	UpTime    int64  `json:"up_time"`
}

// CatalogSnapshot is the durable form of the project-info map. It is
// written transactionally after a successful refresh and reloaded at
// startup while still within its TTL.
type CatalogSnapshot struct {
	Key         string                  `badgerhold:"key"`
	Projects    map[string]*ProjectInfo `json:"projects"`
	RefreshedAt time.Time               `json:"refreshed_at"`
}

// SnapshotKey is the single record key for the catalog snapshot.
const SnapshotKey = "catalog"
