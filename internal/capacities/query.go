package capacities

// The query endpoint expects the exact structure the Capacities web app sends.
// Keep every schema detail in this file.

const personalSpaceID = "local_userPersonal_id"

// QueryRequest is the body of a query endpoint call.
type QueryRequest struct {
	SpaceID         string          `json:"spaceId"`
	Definition      queryOperation  `json:"definition"`
	InUpdate        bool            `json:"inUpdate"`
	IsPriority      bool            `json:"isPriority"`
	PermissionScope permissionScope `json:"permissionScope"`
}

type queryOperation struct {
	Operation  string          `json:"operation"`
	Definition queryDefinition `json:"definition"`
}

type queryDefinition struct {
	Scope             string          `json:"scope"`
	Structures        []structure     `json:"structures"`
	TagNames          []string        `json:"tagNames"`
	AllDatabaseIDs    []string        `json:"allDatabaseIds"`
	AllStructureInfos []structureInfo `json:"allStructureInfos"`
}

type structure struct {
	ID                  string           `json:"id"`
	CollectionIDs       []string         `json:"collectionIds"`
	PropertyDefinitions []map[string]any `json:"propertyDefinitions"`
	DatabaseTreeInfo    databaseTreeInfo `json:"databaseTreeInfo"`
}

type databaseTreeInfo struct {
	CollectionIDs     []string `json:"collectionIds"`
	DefaultDatabaseID string   `json:"defaultDatabaseId"`
}

type structureInfo struct {
	ID                  string           `json:"id"`
	PropertyDefinitions []map[string]any `json:"propertyDefinitions"`
}

type permissionScope struct {
	Type       string `json:"type"`
	DatabaseID string `json:"databaseId"`
}

// QueryPayload builds the request body that lists every web resource entry
// of the given database.
func QueryPayload(databaseID string) QueryRequest {
	return QueryRequest{
		SpaceID: personalSpaceID,
		Definition: queryOperation{
			Operation: "general",
			Definition: queryDefinition{
				Scope: "structures",
				Structures: []structure{{
					ID:                  WebResourceType,
					CollectionIDs:       []string{databaseID},
					PropertyDefinitions: []map[string]any{},
					DatabaseTreeInfo: databaseTreeInfo{
						CollectionIDs:     []string{databaseID},
						DefaultDatabaseID: databaseID,
					},
				}},
				TagNames:       []string{},
				AllDatabaseIDs: []string{databaseID, databaseID},
				AllStructureInfos: []structureInfo{{
					ID:                  WebResourceType,
					PropertyDefinitions: []map[string]any{},
				}},
			},
		},
		InUpdate:   true,
		IsPriority: true,
		PermissionScope: permissionScope{
			Type:       "database",
			DatabaseID: databaseID,
		},
	}
}
