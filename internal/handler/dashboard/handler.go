// Package dashboard serves the embedded demo page for exercising the
// honeypot endpoint from a browser.
package dashboard

import "net/http"

// Serve writes the demo page.
func Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

const page = `<!DOCTYPE html>
<html>
<head>
  <title>Scamtrap Honeypot Dashboard</title>
  <style>
    body { font-family: Arial; background: #f3f4f6; padding: 40px; }
    h1 { color: #111827; }
    .card { background: white; padding: 20px; border-radius: 10px;
            margin-bottom: 20px; box-shadow: 0 2px 6px rgba(0,0,0,.1); }
    textarea, input { width: 100%; padding: 10px; margin-top: 8px; }
    button { padding: 10px 20px; background: #2563eb; color: white;
             border: none; border-radius: 5px; cursor: pointer; }
    pre { background: #e5e7eb; padding: 10px; overflow: auto; }
  </style>
</head>
<body>
<h1>Scamtrap Honeypot</h1>
<div class="card">
  <h3>API Key</h3>
  <input id="apiKey" placeholder="Enter x-api-key" />
</div>
<div class="card">
  <h3>Test Honeypot API</h3>
  <textarea id="jsonInput" rows="10">
{
  "sessionId": "test-001",
  "message": {
    "sender": "scammer",
    "text": "Your bank account will be blocked today. Verify urgently.",
    "timestamp": "2026-01-21T10:15:30Z"
  },
  "conversationHistory": []
}
  </textarea>
  <br><br>
  <button onclick="send()">Send</button>
</div>
<div class="card">
  <h3>Response</h3>
  <pre id="output"></pre>
</div>
<div class="card">
  <h3>Live Feed</h3>
  <button onclick="watch()">Connect</button>
  <pre id="feed"></pre>
</div>
<script>
function send() {
  const key = document.getElementById("apiKey").value;
  if (!key) {
    document.getElementById("output").textContent = "API key is required";
    return;
  }
  fetch("/api/honeypot", {
    method: "POST",
    headers: {
      "Content-Type": "application/json",
      "x-api-key": key
    },
    body: document.getElementById("jsonInput").value
  })
  .then(res => res.json())
  .then(data => {
    document.getElementById("output").textContent =
      JSON.stringify(data, null, 2);
  })
  .catch(() => {
    document.getElementById("output").textContent = "Request failed";
  });
}
function watch() {
  const key = document.getElementById("apiKey").value;
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const ws = new WebSocket(proto + "://" + location.host + "/api/feed?key=" + encodeURIComponent(key));
  ws.onmessage = (ev) => {
    const feed = document.getElementById("feed");
    feed.textContent = ev.data + "\n" + feed.textContent;
  };
  ws.onclose = () => {
    document.getElementById("feed").textContent = "feed disconnected";
  };
}
</script>
</body>
</html>
`
