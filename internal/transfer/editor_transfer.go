package transfer

type EditorCreation struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
