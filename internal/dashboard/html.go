package dashboard

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Smart Checkout</title>
    <style>
        body { font-family: Arial, sans-serif; }
        #container { display: flex; flex-direction: row; justify-content: space-around; }
        #left-pane, #right-pane { flex: 1; padding: 20px; }
        #video-feed { width: 640px; height: 480px; background: #181818; }
        table { width: 100%; border-collapse: collapse; }
        th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
        button { padding: 10px 20px; margin: 10px; font-size: 16px; }
    </style>
</head>
<body>
    <h1>Smart Checkout</h1>
    <div id="container">
        <div id="left-pane">
            <h2>Camera Feed</h2>
            <img id="video-feed" src="/video_feed" alt="Camera Feed">
            <div>
                <button id="start-btn">Start Detection</button>
                <button id="stop-btn">Stop Detection</button>
            </div>
        </div>
        <div id="right-pane">
            <h2>Dashboard</h2>
            <table id="dashboard-table">
                <thead>
                    <tr>
                        <th>Product</th>
                        <th>Quantity</th>
                        <th>Price</th>
                    </tr>
                </thead>
                <tbody></tbody>
            </table>
        </div>
    </div>
    <script>
        const tableBody = document.querySelector('#dashboard-table tbody');

        document.getElementById('start-btn').addEventListener('click', () => {
            fetch('/api/detection/start', { method: 'POST' });
        });
        document.getElementById('stop-btn').addEventListener('click', () => {
            fetch('/api/detection/stop', { method: 'POST' });
        });

        const events = new EventSource('/api/dashboard/stream');
        events.onmessage = (msg) => {
            const data = JSON.parse(msg.data);
            tableBody.innerHTML = '';
            data.products.forEach(item => {
                const row = document.createElement('tr');
                const name = document.createElement('td');
                name.textContent = item.name;
                const quantity = document.createElement('td');
                quantity.textContent = item.quantity;
                const price = document.createElement('td');
                price.textContent = '$' + (item.price * item.quantity).toFixed(2);
                row.append(name, quantity, price);
                tableBody.appendChild(row);
            });
        };
    </script>
</body>
</html>
`
