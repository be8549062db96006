package render

import (
	"encoding/json"

	"github.com/mfedotov/brdforge/internal/model"
)

// JSON renders the document as indented JSON.
func JSON(doc *model.BRD) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
