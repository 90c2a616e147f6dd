package dto

// ChangeSchema is one difference between two menus.
type ChangeSchema struct {
	Kind    string   `json:"kind"`
	Path    []string `json:"path"`
	OldLink string   `json:"old_link,omitempty"`
	NewLink string   `json:"new_link,omitempty"`
	Summary string   `json:"summary"`
}

// DiffMeta identifies the compared menus.
type DiffMeta struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Menu  string `json:"menu"`
	Count int    `json:"count"`
}

// DiffResponse lists the changes from one version's menu to another's.
type DiffResponse struct {
	Data []ChangeSchema `json:"data"`
	Meta DiffMeta       `json:"meta"`
}
