package ownership

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RenderASCII renders a Report as an ASCII table.
func RenderASCII(report Report) string {
	var output strings.Builder

	output.WriteString("👥 Code Ownership Report\n")
	output.WriteString("═════════════════════════════════════════════════════════════════════════════════\n\n")

	if report.TotalOwners == 0 {
		output.WriteString("No ownership data available\n")
		return output.String()
	}

	output.WriteString(fmt.Sprintf("Analyzed: %s | Total Owners: %d\n\n", report.AnalyzedAt, report.TotalOwners))

	output.WriteString(fmt.Sprintf(
		"%-20s │ %-8s │ %-14s │ %-10s\n",
		"Owner", "Files", "Primary Owner", "Avg Share",
	))
	output.WriteString("─────────────────────┼──────────┼────────────────┼────────────\n")

	for _, m := range report.OwnerMetrics {
		owner := m.Owner
		if len(owner) > 20 {
			owner = owner[:17] + "..."
		}

		output.WriteString(fmt.Sprintf(
			"%-20s │ %-8d │ %-14d │ %9.1f%%\n",
			owner, m.FileCount, m.PrimaryOwnerCount, m.AverageShare,
		))
	}

	return output.String()
}

// RenderJSON renders a Report as indented JSON.
func RenderJSON(report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderHTML renders an interactive HTML ownership report.
func RenderHTML(report Report) (string, error) {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return "", err
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>MetricMancer: Code Ownership Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            min-height: 100vh;
            padding: 40px 20px;
        }
        .container {
            max-width: 1400px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 10px 40px rgba(0, 0, 0, 0.2);
            padding: 40px;
        }
        h1 { color: #333; margin-bottom: 10px; font-size: 32px; }
        .subtitle { color: #666; margin-bottom: 30px; font-size: 14px; }
        .summary {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 40px;
        }
        .summary-card {
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            padding: 20px;
            border-radius: 8px;
        }
        .summary-label { font-size: 12px; text-transform: uppercase; opacity: 0.9; margin-bottom: 8px; }
        .summary-value { font-size: 28px; font-weight: bold; }
        .table-container { margin-bottom: 40px; overflow-x: auto; }
        table { width: 100%%; border-collapse: collapse; }
        th {
            background: #f8f9fa;
            padding: 12px;
            text-align: left;
            font-weight: 600;
            color: #333;
            border-bottom: 2px solid #667eea;
        }
        td { padding: 12px; border-bottom: 1px solid #eee; color: #666; }
        tr:hover { background: #f8f9fa; }
        .chart-container {
            position: relative;
            height: 300px;
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 40px;
        }
        .chart-title { font-size: 14px; font-weight: 600; margin-bottom: 15px; color: #333; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>👥 Code Ownership Report</h1>
        <div class="subtitle">Generated at %s</div>

        <div class="summary">
            <div class="summary-card">
                <div class="summary-label">Total Owners</div>
                <div class="summary-value" id="totalOwners">%d</div>
            </div>
            <div class="summary-card">
                <div class="summary-label">Total Files Owned</div>
                <div class="summary-value" id="totalFiles">-</div>
            </div>
        </div>

        <div class="table-container">
            <h2 style="margin-bottom: 20px; color: #333;">Owner Metrics</h2>
            <table id="ownerTable">
                <thead>
                    <tr><th>Owner</th><th>Files</th><th>Primary Owner</th><th>Avg Share</th></tr>
                </thead>
                <tbody id="ownerBody"></tbody>
            </table>
        </div>

        <div class="chart-container">
            <div class="chart-title">Primary Ownership by Author</div>
            <canvas id="ownershipChart"></canvas>
        </div>

        <div class="footer">
            Generated by MetricMancer · %s
        </div>
    </div>

    <script>
        const report = %s;

        let totalFiles = 0;
        report.owner_metrics.forEach(m => { totalFiles += m.file_count; });
        document.getElementById('totalOwners').textContent = report.total_owners;
        document.getElementById('totalFiles').textContent = totalFiles;

        const tbody = document.getElementById('ownerBody');
        report.owner_metrics.forEach(m => {
            const row = tbody.insertRow();
            row.innerHTML = '<td>' + m.owner + '</td>' +
                '<td>' + m.file_count + '</td>' +
                '<td>' + m.primary_owner_count + '</td>' +
                '<td>' + m.average_share.toFixed(1) + '%%</td>';
        });

        const owners = report.owner_metrics.map(m => m.owner);
        const primaryCounts = report.owner_metrics.map(m => m.primary_owner_count);

        new Chart(document.getElementById('ownershipChart'), {
            type: 'bar',
            data: {
                labels: owners,
                datasets: [{ label: 'Files owned', data: primaryCounts, backgroundColor: '#667eea' }]
            },
            options: {
                indexAxis: 'y',
                responsive: true,
                maintainAspectRatio: false,
                plugins: { legend: { display: false } },
            }
        });
    </script>
</body>
</html>
`, report.AnalyzedAt, report.TotalOwners, time.Now().Format("2006-01-02 15:04:05"), string(jsonData))

	return html, nil
}
