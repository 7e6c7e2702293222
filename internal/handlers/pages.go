package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The pipeline emits its own small HTML pages instead of redirecting
// blindly: the interstitial inserts a countdown and contact information,
// and the error pages keep the target reachable by hand.

type pageData struct {
	SiteName     string
	AdminEmail   string
	TargetURL    string
	Slug         string
	ErrorMessage string
}

const pageHead = `<meta charset="UTF-8" />
<meta name="robots" content="noindex, nofollow" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />`

var hostForbiddenPage = template.Must(template.New("host_forbidden").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.SiteName}} - Unauthorized hostname</title>
` + pageHead + `
</head>
<body>
<h2>{{.SiteName}} - 403</h2>
<h1>Unauthorized hostname</h1>
<p>For abuse control, this hostname is not authorized to resolve short links.</p>
<a href="/">Back to home</a>
<p class="contact">Questions? Contact <a href="mailto:{{.AdminEmail}}">{{.AdminEmail}}</a>.</p>
</body>
</html>`))

var bannedPage = template.Must(template.New("banned").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.SiteName}} - Resolution refused</title>
` + pageHead + `
</head>
<body>
<h2>{{.SiteName}} - 403</h2>
<h1>Resolution refused</h1>
<p>We understood your request, but the server refused it.</p>
<p class="warning">The target of this short link may contain disallowed content.</p>
<a href="/">Back to home</a>
<p class="contact">Questions? Contact <a href="mailto:{{.AdminEmail}}">{{.AdminEmail}}</a>.</p>
</body>
</html>`))

var notFoundPage = template.Must(template.New("not_found").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.SiteName}} - Not found</title>
` + pageHead + `
</head>
<body>
<h2>{{.SiteName}} - 404</h2>
<h1>Short link not found</h1>
<p>The slug you requested does not exist or has been removed.</p>
<a href="/">Back to home</a>
</body>
</html>`))

var interstitialPage = template.Must(template.New("interstitial").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.SiteName}} - Taking you to the target: via #{{.Slug}}</title>
` + pageHead + `
</head>
<body>
<h2><a href="/" title="{{.SiteName}} home" style="text-decoration: none; color: inherit;">{{.SiteName}}</a></h2>
<h1>Taking you to the target page</h1>
<p>Status: ok</p>
<p>Redirecting in <span id="countdown"></span> seconds.<br />If nothing happens, follow this link:</p>
<a href="{{.TargetURL}}" rel="external nofollow noopener noreferrer" style="word-wrap:break-word;overflow-wrap:break-word;white-space:normal;">{{.TargetURL}}</a>
<noscript>
<p>This page works without JavaScript too; use the link above.</p>
</noscript>
<p class="contact">Questions about this target URL? Contact <a href="mailto:{{.AdminEmail}}">{{.AdminEmail}}</a>.</p>
<script>
const targetTime = Date.now() + 3000;
function updateCountdown() {
	const remainingTime = Math.max(targetTime - Date.now(), 0);
	document.getElementById('countdown').innerText = Math.ceil(remainingTime / 1000);
	if (remainingTime > 0) {
		setTimeout(updateCountdown, 1000);
	} else {
		window.location.href = {{.TargetURL}};
	}
}
updateCountdown();
</script>
</body>
</html>`))

// errorPage still surfaces the raw target so the visitor can follow it by
// hand; it is explicitly marked as unchecked.
var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.SiteName}} - Internal error</title>
` + pageHead + `
</head>
<body>
<h2>{{.SiteName}} - 500</h2>
<h1>Something went wrong on our side</h1>
<p>An internal step failed, but we will still show you the target address.</p>
<p><span class="warning">A link shown under error conditions has likely not been safety-checked.</span><br />
{{if .TargetURL}}Follow it here: <a href="{{.TargetURL}}" rel="external nofollow noopener noreferrer">{{.TargetURL}}</a>{{else}}[target unavailable]{{end}}</p>
<p>Or <a href="/">go back home</a>.</p>
<p class="contact">Please report this to <a href="mailto:{{.AdminEmail}}">{{.AdminEmail}}</a>.</p>
<p>Error:</p>
<pre class="error-message">{{.ErrorMessage}}</pre>
</body>
</html>`))

func (h *Handler) renderPage(c *gin.Context, status int, tmpl *template.Template, data pageData) {
	data.SiteName = h.cfg.SiteName
	data.AdminEmail = h.cfg.AdminEmail

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render page", "template", tmpl.Name(), "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
