package server

// HTMLPage is the template for the demo page. {{.Title}} is the document
// title the smoke test asserts on.
const HTMLPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            min-height: 100vh;
            margin: 0;
            display: flex;
            align-items: center;
            justify-content: center;
            background: linear-gradient(135deg, #4facfe 0%, #8e54e9 100%);
        }
        .glass {
            padding: 40px 60px;
            border-radius: 24px;
            background: rgba(255, 255, 255, 0.18);
            border: 1px solid rgba(255, 255, 255, 0.35);
            box-shadow: 0 8px 32px rgba(31, 38, 135, 0.25);
            backdrop-filter: blur(14px) saturate(180%);
            -webkit-backdrop-filter: blur(14px) saturate(180%);
            color: white;
            text-align: center;
        }
        h1 { margin: 0 0 10px; font-weight: 600; }
        p { margin: 0; opacity: 0.85; }
    </style>
</head>
<body>
    <div class="glass">
        <h1>{{.Title}}</h1>
        <p>Frosted panel rendered with backdrop-filter.</p>
    </div>
</body>
</html>
`
