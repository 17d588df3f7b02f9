package reporting

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Parity Report</title>
<style>
body { font-family: sans-serif; max-width: 70em; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; text-align: left; }
pre { background: #f5f5f5; padding: 0.6em; overflow-x: auto; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// renderHTML converts a markdown rendering into a standalone HTML page.
func renderHTML(markdown string) (string, error) {
	var body strings.Builder
	if err := htmlMarkdown.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return htmlHeader + body.String() + htmlFooter, nil
}
