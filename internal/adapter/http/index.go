package http

import (
	"html/template"
	"net/http"
)

// indexHTML is the host page. The map SVG is inlined so strip clicks work
// without a same-origin fetch on first paint; afterwards the page re-fetches
// both views whenever the grouping changes.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Zonal Temperature Anomalies</title>
  <style>
    body { font-family: sans-serif; margin: 2rem auto; max-width: 760px; color: #222; }
    h1 { font-size: 1.3rem; }
    #latmap .band-strip { cursor: pointer; }
    #latmap .band-strip:hover { stroke-width: 1.2; }
    .controls { margin: 0.75rem 0; }
    button { padding: 0.35rem 0.9rem; margin-right: 0.5rem; }
    .hint { color: #666; font-size: 0.85rem; }
  </style>
</head>
<body>
  <h1>Zonal temperature anomalies</h1>
  <p class="hint">Click a latitude strip to cycle it through group 1 → 2 → 3 → unassigned.</p>
  <div id="latmap">{{.MapSVG}}</div>
  <div class="controls">
    <button id="clear-groups" type="button">Clear all</button>
    <button id="restore-defaults" type="button">Restore defaults</button>
  </div>
  <div id="linechart"><img id="chart-img" src="/chart.svg" alt="Anomaly trend per group" width="720"></div>
  <script>
    async function refresh() {
      const resp = await fetch('/map.svg', {cache: 'no-store'});
      document.getElementById('latmap').innerHTML = await resp.text();
      document.getElementById('chart-img').src = '/chart.svg?v=' + Date.now();
    }
    async function post(path) {
      const resp = await fetch(path, {method: 'POST'});
      if (resp.ok) { await refresh(); }
    }
    document.getElementById('latmap').addEventListener('click', (evt) => {
      const strip = evt.target.closest('.band-strip');
      if (strip) { post('/api/bands/' + strip.dataset.band + '/cycle'); }
    });
    document.getElementById('clear-groups').addEventListener('click', () => post('/api/grouping/clear'));
    document.getElementById('restore-defaults').addEventListener('click', () => post('/api/grouping/defaults'));
  </script>
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	MapSVG template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	svg, err := s.latmap.Render(r.Context(), s.store.Grouping())
	if err != nil {
		s.logger.Error("index render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:gosec // the SVG is produced by our own renderer, not user input
	if err := indexTemplate.Execute(w, indexData{MapSVG: template.HTML(svg)}); err != nil {
		s.logger.Error("index template failed", "error", err)
	}
}
