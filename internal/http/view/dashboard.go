package view

import (
	"bytes"
	"html/template"
)

// DashboardData provides the dynamic fields required by the admin dashboard.
type DashboardData struct {
	Title     string
	AdminKey  string
	EventsURL string
	ChartsURL string
	ExportURL string
	PurgeURL  string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{.Title}}</title>
	<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
	<style>
		:root {
			--bg: #090a0f;
			--card: rgba(255, 255, 255, 0.05);
			--border: rgba(255, 255, 255, 0.15);
			--text: #e7ecff;
			--muted: #a1acc5;
			--accent: #7dd3fc;
			font-family: "Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
		}
		* { box-sizing: border-box; }
		body {
			margin: 0;
			padding: 24px;
			background: radial-gradient(circle at 20% 20%, #111827, #030712 60%);
			color: var(--text);
		}
		h1 { font-size: 1.4rem; margin: 0 0 18px; }
		h2 { font-size: 1rem; color: var(--muted); margin: 0 0 12px; }
		.grid {
			display: grid;
			grid-template-columns: repeat(auto-fit, minmax(320px, 1fr));
			gap: 18px;
			margin-bottom: 24px;
		}
		.card {
			background: var(--card);
			border: 1px solid var(--border);
			border-radius: 14px;
			padding: 18px;
		}
		form.filters {
			display: flex;
			gap: 10px;
			flex-wrap: wrap;
			margin-bottom: 16px;
		}
		input, select, button {
			background: rgba(255,255,255,0.08);
			border: 1px solid var(--border);
			border-radius: 8px;
			color: var(--text);
			padding: 8px 10px;
			font-size: 0.85rem;
		}
		button { cursor: pointer; }
		button.danger { border-color: #f87171; color: #f87171; }
		table { width: 100%; border-collapse: collapse; font-size: 0.82rem; }
		th, td {
			text-align: left;
			padding: 8px 10px;
			border-bottom: 1px solid var(--border);
			white-space: nowrap;
		}
		th { color: var(--muted); cursor: pointer; }
		.pager { display: flex; gap: 10px; align-items: center; margin-top: 12px; }
		.muted { color: var(--muted); }
		a { color: var(--accent); }
	</style>
</head>
<body>
	<h1>{{.Title}}</h1>

	<div class="grid">
		<div class="card"><h2>Top Pages</h2><canvas id="chart-pages"></canvas></div>
		<div class="card"><h2>Top User Groups</h2><canvas id="chart-groups"></canvas></div>
		<div class="card"><h2>Top Taxonomy Terms</h2><canvas id="chart-terms"></canvas></div>
		<div class="card"><h2>Devices</h2><canvas id="chart-devices"></canvas></div>
	</div>

	<div class="card">
		<h2>Copy Events</h2>
		<form class="filters" id="filters">
			<input type="date" name="date_from" />
			<input type="date" name="date_to" />
			<input type="text" name="target_id" placeholder="Target ID" />
			<input type="text" name="page_url" placeholder="Page URL" />
			<button type="submit">Filter</button>
			<a id="export" href="{{.ExportURL}}">Export CSV</a>
			<button type="button" class="danger" id="purge">Purge all</button>
		</form>
		<table>
			<thead>
				<tr>
					<th data-sort="time">Time</th>
					<th data-sort="target_id">Target ID</th>
					<th>Page</th>
					<th>Content Type</th>
					<th data-sort="user_email">User</th>
					<th data-sort="user_group">Group</th>
					<th>IP Hash</th>
					<th>Device</th>
					<th data-sort="operating_system">OS</th>
				</tr>
			</thead>
			<tbody id="rows"></tbody>
		</table>
		<div class="pager">
			<button type="button" id="prev">Prev</button>
			<span class="muted" id="page-info"></span>
			<button type="button" id="next">Next</button>
		</div>
	</div>

	<script>
		const adminKey = {{.AdminKey}};
		const eventsURL = {{.EventsURL}};
		const chartsURL = {{.ChartsURL}};
		const purgeURL = {{.PurgeURL}};

		let page = 1;
		let totalPages = 1;
		let sortBy = "time";
		let sortDir = "desc";

		function query() {
			const form = new FormData(document.getElementById("filters"));
			const params = new URLSearchParams();
			for (const [k, v] of form.entries()) {
				if (v) params.set(k, v);
			}
			params.set("page", page);
			params.set("sort_by", sortBy);
			params.set("sort_dir", sortDir);
			params.set("key", adminKey);
			return params;
		}

		async function loadEvents() {
			const res = await fetch(eventsURL + "?" + query().toString());
			if (!res.ok) return;
			const data = await res.json();
			totalPages = data.total_pages;
			document.getElementById("page-info").textContent =
				"Page " + page + " of " + Math.max(totalPages, 1) + " (" + data.total_count + " events)";
			const body = document.getElementById("rows");
			body.innerHTML = "";
			for (const row of data.rows) {
				const tr = document.createElement("tr");
				const cells = [
					new Date(row.time).toLocaleString(),
					row.target_id,
					row.page_label,
					row.content_type_label,
					row.user_email,
					row.user_group,
					row.short_ip_hash,
					row.device_class,
					row.operating_system
				];
				for (const c of cells) {
					const td = document.createElement("td");
					td.textContent = c;
					tr.appendChild(td);
				}
				body.appendChild(tr);
			}
		}

		const charts = {};
		function renderChart(id, kind, series, color) {
			const ctx = document.getElementById(id);
			if (charts[id]) charts[id].destroy();
			charts[id] = new Chart(ctx, {
				type: kind,
				data: {
					labels: series.labels,
					datasets: [{ data: series.values, backgroundColor: color }]
				},
				options: {
					plugins: {
						legend: { display: kind === "doughnut" },
						tooltip: {
							callbacks: {
								title: (items) => {
									const full = series.full_labels;
									return full && full[items[0].dataIndex]
										? full[items[0].dataIndex]
										: items[0].label;
								}
							}
						}
					}
				}
			});
		}

		async function loadCharts() {
			const res = await fetch(chartsURL + "?" + query().toString());
			if (!res.ok) return;
			const data = await res.json();
			renderChart("chart-pages", "bar", data.top_pages, "#7dd3fc");
			renderChart("chart-groups", "bar", data.top_user_groups, "#a5b4fc");
			renderChart("chart-terms", "bar", data.top_taxonomies, "#86efac");
			renderChart("chart-devices", "doughnut", data.device_mix,
				["#7dd3fc", "#a5b4fc", "#f9a8d4"]);
		}

		document.getElementById("filters").addEventListener("submit", (e) => {
			e.preventDefault();
			page = 1;
			loadEvents();
			loadCharts();
		});
		document.getElementById("prev").addEventListener("click", () => {
			if (page > 1) { page--; loadEvents(); }
		});
		document.getElementById("next").addEventListener("click", () => {
			if (page < totalPages) { page++; loadEvents(); }
		});
		for (const th of document.querySelectorAll("th[data-sort]")) {
			th.addEventListener("click", () => {
				const col = th.getAttribute("data-sort");
				if (sortBy === col) {
					sortDir = sortDir === "desc" ? "asc" : "desc";
				} else {
					sortBy = col;
					sortDir = "desc";
				}
				loadEvents();
			});
		}
		document.getElementById("export").addEventListener("click", (e) => {
			e.preventDefault();
			const params = query();
			params.delete("page");
			window.location.assign(e.target.getAttribute("href") + "?" + params.toString());
		});
		document.getElementById("purge").addEventListener("click", async () => {
			const confirmWord = prompt('Type DELETE to remove every recorded event.');
			if (confirmWord !== "DELETE") return;
			await fetch(purgeURL + "?key=" + encodeURIComponent(adminKey), {
				method: "POST",
				headers: { "Content-Type": "application/json" },
				body: JSON.stringify({ confirm: confirmWord })
			});
			page = 1;
			loadEvents();
			loadCharts();
		});

		loadEvents();
		loadCharts();
	</script>
</body>
</html>
`))

// RenderDashboard expands the admin dashboard template with the provided data.
func RenderDashboard(data DashboardData) (string, error) {
	if data.Title == "" {
		data.Title = "Copy Analytics"
	}
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
