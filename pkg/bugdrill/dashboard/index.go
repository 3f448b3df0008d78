package dashboard

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>bugdrill</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .header { background: #2c3e50; color: white; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
        .grid { display: grid; grid-template-columns: 220px 1fr 1fr; gap: 20px; }
        .card { background: white; padding: 20px; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .exercise { padding: 8px; cursor: pointer; border-radius: 3px; }
        .exercise:hover { background: #ecf0f1; }
        .exercise.active { background: #3498db; color: white; }
        #editor { width: 100%; height: 320px; font-family: monospace; font-size: 14px; }
        .marker { padding: 8px; margin: 4px 0; border-left: 4px solid #f39c12; background: #fdf6e3; }
        .panel { padding: 12px; border-radius: 3px; background: #ecf0f1; min-height: 60px; white-space: pre-wrap; }
        .panel.failed { background: #fdecea; border-left: 4px solid #e74c3c; }
        .panel.succeeded { background: #eafaf1; border-left: 4px solid #2ecc71; }
        button { padding: 8px 16px; border: none; border-radius: 3px; color: white; margin-right: 8px; cursor: pointer; }
        .check { background: #3498db; } .reset { background: #95a5a6; }
        pre { background: #2c3e50; color: #ecf0f1; padding: 10px; overflow-x: auto; }
    </style>
</head>
<body>
    <div class="header">
        <h1>bugdrill</h1>
        <p>Find the injected bug, fix it, press Check</p>
    </div>
    <div class="grid">
        <div class="card">
            <h3>Exercises</h3>
            <div id="exercises"></div>
        </div>
        <div class="card">
            <h3 id="title">Pick an exercise</h3>
            <p id="description"></p>
            <textarea id="editor" spellcheck="false"></textarea>
            <div style="margin-top:10px">
                <button class="check" onclick="check()">Check</button>
                <button class="reset" onclick="reset()">Reset</button>
                <span id="state"></span>
            </div>
            <div id="markers"></div>
        </div>
        <div class="card">
            <h3>Result</h3>
            <div id="panel" class="panel">Waiting...</div>
            <div id="diff"></div>
        </div>
    </div>

    <script>
        const proto = location.protocol === 'https:' ? 'wss' : 'ws';
        const ws = new WebSocket(proto + '://' + location.host + '/ws');
        const editor = document.getElementById('editor');
        let current = null;

        fetch('/api/exercises').then(r => r.json()).then(list => {
            const box = document.getElementById('exercises');
            list.forEach(ex => {
                const div = document.createElement('div');
                div.className = 'exercise';
                div.textContent = ex.title + ' (' + ex.language + ')';
                div.onclick = () => {
                    document.querySelectorAll('.exercise').forEach(e => e.classList.remove('active'));
                    div.classList.add('active');
                    current = ex;
                    document.getElementById('title').textContent = ex.title;
                    document.getElementById('description').textContent = ex.description;
                    ws.send(JSON.stringify({type: 'present', exercise: ex.id}));
                };
                box.appendChild(div);
            });
        });

        editor.addEventListener('input', () => {
            ws.send(JSON.stringify({type: 'edit', text: editor.value}));
        });

        function check() { ws.send(JSON.stringify({type: 'check'})); }
        function reset() { ws.send(JSON.stringify({type: 'reset'})); }

        ws.onmessage = msg => {
            const m = JSON.parse(msg.data);
            const panel = document.getElementById('panel');
            if (m.type === 'text') {
                editor.value = m.data.text;
            } else if (m.type === 'markers') {
                const box = document.getElementById('markers');
                box.innerHTML = '';
                (m.data.annotations || []).forEach(a => {
                    const div = document.createElement('div');
                    div.className = 'marker';
                    div.textContent = 'line ' + a.line + ': ' + a.message;
                    box.appendChild(div);
                });
            } else if (m.type === 'prompt') {
                panel.className = 'panel';
                panel.textContent = m.data.message;
                document.getElementById('state').textContent = m.data.state;
                document.getElementById('diff').innerHTML = '';
            } else if (m.type === 'result') {
                const r = m.data.result;
                panel.className = 'panel ' + m.data.state;
                if (r.has_defects) {
                    panel.textContent = r.summary_message + '\n' +
                        r.defects.map(d => 'line ' + d.line + ': ' + d.message).join('\n');
                } else {
                    panel.textContent = r.success_message;
                }
                document.getElementById('state').textContent = m.data.state;
                const diffBox = document.getElementById('diff');
                diffBox.innerHTML = '';
                if (m.data.diff) {
                    const pre = document.createElement('pre');
                    pre.textContent = m.data.diff;
                    diffBox.appendChild(pre);
                }
            } else if (m.type === 'error') {
                panel.className = 'panel failed';
                panel.textContent = m.message;
            }
        };
    </script>
</body>
</html>
`
