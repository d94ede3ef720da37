package render

import "html"

// Fallback is the bare document served when no theme can render a page.
func Fallback(title, message string) string {
	t := html.EscapeString(title)
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>` + t + `</title>
<style>body{font-family:system-ui,sans-serif;max-width:40rem;margin:4rem auto;padding:0 1rem;color:#1e293b}</style>
</head>
<body>
<h1>` + t + `</h1>
<p>` + html.EscapeString(message) + `</p>
</body>
</html>
`
}
