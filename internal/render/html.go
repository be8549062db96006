package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mfedotov/brdforge/internal/model"
)

// md handles pipe tables in the stakeholder, milestone and KPI sections.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the document as a standalone HTML page by converting the
// Markdown form.
func HTML(doc *model.BRD, opts Options) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(doc, opts)), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, htmlShell, doc.Metadata.ProjectName, body.String())
	return page.String(), nil
}

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
h1, h2, h3, h4 { font-family: Helvetica, Arial, sans-serif; }
h2 { border-bottom: 1px solid #e5e7eb; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #d1d5db; padding: .4rem .6rem; text-align: left; }
hr { border: 0; border-top: 1px solid #e5e7eb; margin: 1.5rem 0; }
</style>
</head>
<body>
%s</body>
</html>
`
