package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `{{define "navlist"}}<ul>
{{- range .}}
  {{- if .Group}}
  <li class="group{{if .Expanded}} expanded{{end}}{{if .Active}} active{{end}}" data-group-id="{{.ID}}">
    <div class="group-header">
      <button type="button" class="group-toggle" data-group-id="{{.ID}}" aria-expanded="{{.Expanded}}" aria-label="Toggle {{.Title}}"></button>
      {{- if .Href}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a>{{else}}<span class="group-title">{{.Title}}</span>{{end}}
    </div>
    {{template "navlist" .Children}}
  </li>
  {{- else}}
  <li class="leaf"><a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}{{if .External}} target="_blank" rel="noopener noreferrer"{{end}}>{{.Title}}</a></li>
  {{- end}}
{{- end}}
</ul>{{end -}}
<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} - {{end}}{{.SiteTitle}}</title>
  {{- if .Description}}
  <meta name="description" content="{{.Description}}">
  {{- end}}
  <link rel="stylesheet" href="{{.AssetBase}}style.css">
</head>
<body class="{{if .SidebarHidden}}sidebar-hidden{{end}}"
      data-live="{{.Live}}"
      data-home="{{.Home}}"
      data-uri="{{.URI}}"
      data-fingerprint="{{.Fingerprint}}"
      data-language="{{.Language}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a class="project-title" href="{{.Home}}">{{.SiteTitle}}</a>
      <input type="text" id="search-input" placeholder="Search docs..." autocomplete="off">
      <ul class="search-results" id="search-results"></ul>
      <button type="button" class="expand-all" id="expand-all"{{if .ExpandAllDisabled}} disabled{{end}} data-all-expanded="{{.AllExpanded}}">
        {{- if .AllExpanded}}Collapse all{{else}}Expand all{{end -}}
      </button>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{template "navlist" .NavTree}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      {{- if .EditURL}}
      <a class="edit-link" href="{{.EditURL}}" target="_blank" rel="noopener noreferrer">Edit on GitHub</a>
      {{- end}}
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/>
        </svg>
        <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
    <div class="page-layout">
      <article class="page-content">
        {{- if .Title}}
        <h1 class="page-title">{{.Title}}</h1>
        {{- end}}
        {{- if .Description}}
        <p class="page-description">{{.Description}}</p>
        {{- end}}
        {{.Body}}
        {{- if or .Prev .Next}}
        <nav class="pagination">
          {{- with .Prev}}<a class="prev" href="{{.Href}}"><span>Previous</span>{{.Title}}</a>{{end}}
          {{- with .Next}}<a class="next" href="{{.Href}}"><span>Next</span>{{.Title}}</a>{{end}}
        </nav>
        {{- end}}
      </article>
      {{- if and .ShowTOC .Headings}}
      <aside class="toc">
        <h4>On this page</h4>
        <ul>
          {{- range .Headings}}
          {{- if and (ge .Depth 2) (le .Depth 3)}}
          <li class="depth-{{.Depth}}"><a href="#" data-heading="{{.Value}}">{{.Value}}</a></li>
          {{- end}}
          {{- end}}
        </ul>
      </aside>
      {{- end}}
    </div>
  </main>
  <script src="{{.AssetBase}}script.js"></script>
</body>
</html>`

// cssContent is the full CSS for the documentation shell.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --accent-light: #e7f5ff;
  --code-bg: #f6f8fa;
  --code-border: #e9ecef;
  --sidebar-width: 280px;
  --content-max-width: 860px;
  --toc-width: 220px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
}

[data-theme="dark"] {
  --bg: #1a1b1e;
  --bg-secondary: #25262b;
  --bg-sidebar: #141517;
  --text: #e9ecef;
  --text-secondary: #ced4da;
  --text-muted: #909296;
  --border: #373a40;
  --accent: #4dabf7;
  --accent-hover: #74c0fc;
  --accent-light: #1c2b3a;
  --code-bg: #25262b;
  --code-border: #373a40;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

/* ============ Sidebar ============ */
.sidebar {
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  overflow-y: auto;
  z-index: 100;
  display: flex;
  flex-direction: column;
}

body.sidebar-hidden .sidebar { display: none; }
body.sidebar-hidden .content { margin-left: 0; }

.sidebar-header {
  padding: 20px 16px 12px;
  border-bottom: 1px solid var(--border);
  position: sticky;
  top: 0;
  background: var(--bg-sidebar);
  z-index: 1;
}

.project-title {
  display: block;
  font-size: 1.1rem;
  font-weight: 700;
  color: var(--accent);
  margin-bottom: 12px;
  text-decoration: none;
  white-space: nowrap;
  overflow: hidden;
  text-overflow: ellipsis;
}

#search-input {
  width: 100%;
  padding: 8px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.85rem;
  background: var(--bg);
  color: var(--text);
  outline: none;
}

#search-input:focus {
  border-color: var(--accent);
  box-shadow: 0 0 0 3px var(--accent-light);
}

.search-results {
  list-style: none;
  margin-top: 6px;
}

.search-results a {
  display: block;
  padding: 4px 8px;
  font-size: 0.82rem;
  color: var(--text-secondary);
  text-decoration: none;
  border-radius: 4px;
}

.search-results a:hover { background: var(--accent-light); color: var(--accent); }

.expand-all {
  margin-top: 10px;
  width: 100%;
  padding: 4px 8px;
  font-size: 0.78rem;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--text-secondary);
  cursor: pointer;
}

.expand-all:disabled { opacity: 0.5; cursor: default; }

.sidebar-tree {
  padding: 8px 0;
  flex: 1;
  overflow-y: auto;
}

.sidebar-tree ul {
  list-style: none;
  padding-left: 0;
}

.sidebar-tree ul ul {
  padding-left: 16px;
}

.sidebar-tree .group-header {
  display: flex;
  align-items: center;
  padding: 2px 8px;
}

.sidebar-tree .group-toggle {
  width: 18px;
  height: 18px;
  border: none;
  background: none;
  color: var(--text-muted);
  cursor: pointer;
  flex-shrink: 0;
}

.sidebar-tree .group-toggle::before {
  content: "\25B6";
  display: inline-block;
  font-size: 0.6rem;
  transition: transform 0.15s;
}

.sidebar-tree .group.expanded > .group-header .group-toggle::before {
  transform: rotate(90deg);
}

.sidebar-tree .group > ul { display: none; }
.sidebar-tree .group.expanded > ul { display: block; }

.sidebar-tree .group-title,
.sidebar-tree .group-header a {
  font-size: 0.82rem;
  font-weight: 600;
  color: var(--text-secondary);
  text-decoration: none;
}

.sidebar-tree .group.active > .group-header .group-title { color: var(--accent); }

.sidebar-tree .leaf a {
  display: block;
  padding: 3px 16px 3px 26px;
  font-size: 0.82rem;
  color: var(--text-muted);
  text-decoration: none;
  border-radius: 4px;
  white-space: nowrap;
  overflow: hidden;
  text-overflow: ellipsis;
}

.sidebar-tree a:hover,
.sidebar-tree a.active {
  background: var(--accent-light);
  color: var(--accent);
}

.sidebar-tree a.active { font-weight: 600; }

/* ============ Overlay (mobile) ============ */
.sidebar-overlay {
  display: none;
  position: fixed;
  inset: 0;
  background: rgba(0,0,0,0.4);
  z-index: 99;
}

.sidebar-overlay.visible { display: block; }

/* ============ Main Content ============ */
.content {
  margin-left: var(--sidebar-width);
  flex: 1;
  min-width: 0;
}

.top-bar {
  display: flex;
  justify-content: flex-end;
  align-items: center;
  gap: 12px;
  padding: 8px 24px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
  position: sticky;
  top: 0;
  z-index: 50;
}

.menu-toggle {
  background: none;
  border: none;
  color: var(--text);
  cursor: pointer;
  padding: 4px;
  margin-right: auto;
}

.edit-link {
  font-size: 0.85rem;
  color: var(--text-secondary);
}

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
  padding: 6px 8px;
  display: flex;
  align-items: center;
}

[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

.page-layout {
  display: flex;
  justify-content: center;
  gap: 32px;
}

.page-content {
  max-width: var(--content-max-width);
  flex: 1;
  min-width: 0;
  padding: 32px 40px 64px;
}

.toc {
  width: var(--toc-width);
  flex-shrink: 0;
  padding-top: 40px;
  position: sticky;
  top: 48px;
  align-self: flex-start;
  font-size: 0.82rem;
}

.toc h4 {
  text-transform: uppercase;
  font-size: 0.72rem;
  color: var(--text-muted);
  margin-bottom: 8px;
}

.toc ul { list-style: none; }
.toc .depth-3 { padding-left: 12px; }
.toc a { color: var(--text-secondary); text-decoration: none; }
.toc a:hover { color: var(--accent); }

/* ============ Typography ============ */
.page-title {
  font-size: 2rem;
  font-weight: 700;
  margin-bottom: 8px;
}

.page-description {
  color: var(--text-secondary);
  font-size: 1.1rem;
  margin-bottom: 24px;
}

.markdown-body h1,
.markdown-body h2,
.markdown-body h3,
.markdown-body h4 {
  margin: 32px 0 12px;
  line-height: 1.3;
}

.markdown-body h2 {
  font-size: 1.5rem;
  padding-bottom: 6px;
  border-bottom: 1px solid var(--border);
}

.markdown-body h3 { font-size: 1.2rem; }

.markdown-body h1 > a,
.markdown-body h2 > a,
.markdown-body h3 > a,
.markdown-body h4 > a {
  color: inherit;
  text-decoration: none;
}

.markdown-body p,
.markdown-body .list,
.markdown-body .blockquote {
  margin-bottom: 16px;
}

.markdown-body .list { padding-left: 24px; }

.markdown-body a { color: var(--accent); }

.markdown-body .blockquote {
  border-left: 4px solid var(--accent);
  padding: 8px 16px;
  background: var(--bg-secondary);
  color: var(--text-secondary);
}

/* ============ Code ============ */
.inline-code {
  font-family: "SFMono-Regular", Consolas, "Liberation Mono", Menlo, monospace;
  font-size: 0.85em;
  background: var(--code-bg);
  border: 1px solid var(--code-border);
  border-radius: 4px;
  padding: 1px 5px;
}

pre.chroma {
  font-family: "SFMono-Regular", Consolas, "Liberation Mono", Menlo, monospace;
  font-size: 0.85rem;
  line-height: 1.5;
  background: var(--code-bg);
  border: 1px solid var(--code-border);
  border-radius: 6px;
  padding: 14px 16px;
  overflow-x: auto;
  margin-bottom: 16px;
}

.multi-code-block .tabs {
  display: flex;
  gap: 4px;
  margin-bottom: -1px;
}

.multi-code-block .tab {
  border: 1px solid var(--code-border);
  border-bottom: none;
  border-radius: 6px 6px 0 0;
  background: var(--bg-secondary);
  color: var(--text-muted);
  padding: 4px 12px;
  font-size: 0.8rem;
  cursor: pointer;
}

.multi-code-block .tab.active {
  background: var(--code-bg);
  color: var(--text);
}

.code-columns {
  display: grid;
  grid-template-columns: 1fr 1fr;
  gap: 16px;
}

/* ============ Tables ============ */
.table-wrapper {
  overflow-x: auto;
  margin-bottom: 16px;
}

.table-wrapper table {
  width: 100%;
  border-collapse: collapse;
  font-size: 0.9rem;
}

.table-wrapper th,
.table-wrapper td {
  padding: 8px 12px;
  border: 1px solid var(--border);
  text-align: left;
}

.table-wrapper th { background: var(--bg-secondary); }

/* ============ Widgets ============ */
.expansion-panel {
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 8px 16px;
  margin-bottom: 16px;
}

.expansion-panel summary { cursor: pointer; font-weight: 600; }

.youtube {
  position: relative;
  padding-bottom: 56.25%;
  margin-bottom: 16px;
}

.youtube iframe {
  position: absolute;
  inset: 0;
  width: 100%;
  height: 100%;
}

.button {
  display: inline-block;
  padding: 6px 16px;
  border-radius: 6px;
  background: var(--accent);
  color: #fff;
  border: none;
  text-decoration: none;
  cursor: pointer;
}

.api-box {
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 16px;
  margin-bottom: 16px;
  box-shadow: var(--shadow);
}

.api-box-title { font-weight: 700; font-family: monospace; margin-bottom: 8px; }
.api-box-kind { margin-left: 8px; font-size: 0.75rem; color: var(--text-muted); text-transform: uppercase; }
.api-box-description { color: var(--text-secondary); }

/* ============ Pagination ============ */
.pagination {
  display: flex;
  justify-content: space-between;
  gap: 16px;
  margin-top: 48px;
  padding-top: 16px;
  border-top: 1px solid var(--border);
}

.pagination a {
  display: flex;
  flex-direction: column;
  padding: 10px 16px;
  border: 1px solid var(--border);
  border-radius: 6px;
  text-decoration: none;
  color: var(--accent);
}

.pagination a span { font-size: 0.75rem; color: var(--text-muted); }
.pagination .next { margin-left: auto; text-align: right; }

/* ============ Responsive ============ */
@media (max-width: 1100px) {
  .toc { display: none; }
}

@media (max-width: 768px) {
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; }
  .sidebar.open { transform: translateX(0); }
  .content { margin-left: 0; }
  .page-content { padding: 24px 16px 48px; }
}
`

// jsContent drives the shell. Served pages persist state through the
// state API and follow changes from other tabs over a websocket; static
// pages keep the same state in localStorage.
const jsContent = `(function() {
  "use strict";

  var body = document.body;
  var html = document.documentElement;
  var live = body.dataset.live === "true";
  var home = body.dataset.home === "/" ? "" : body.dataset.home;
  var uri = body.dataset.uri;
  var tree = document.getElementById("sidebar-tree");
  var expandAll = document.getElementById("expand-all");

  // ===== Local storage fallback =====
  function readLocal(key) {
    try {
      var raw = localStorage.getItem("docshell-" + key);
      return raw === null ? null : JSON.parse(raw);
    } catch (e) { return null; }
  }

  function writeLocal(key, value) {
    try { localStorage.setItem("docshell-" + key, JSON.stringify(value)); } catch (e) {}
  }

  function api(method, path, value) {
    var opts = { method: method, credentials: "same-origin", headers: {} };
    if (value !== undefined) {
      opts.headers["Content-Type"] = "application/json";
      opts.body = JSON.stringify(value);
    }
    return fetch(home + path, opts).then(function(r) {
      if (!r.ok) throw new Error(method + " " + path + ": " + r.status);
      return r.status === 204 ? null : r.json();
    });
  }

  // ===== Theme =====
  var themeToggle = document.getElementById("theme-toggle");
  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    writeLocal("theme", theme);
  }
  var storedTheme = readLocal("theme");
  if (storedTheme) {
    setTheme(storedTheme);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    setTheme("dark");
  }
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }

  // ===== Nav groups =====
  function groupIds() {
    var ids = [];
    tree.querySelectorAll("li.group").forEach(function(li) { ids.push(li.dataset.groupId); });
    return ids;
  }

  function currentState() {
    var state = {};
    tree.querySelectorAll("li.group").forEach(function(li) {
      state[li.dataset.groupId] = li.classList.contains("expanded");
    });
    return state;
  }

  function isAllExpanded(state) {
    var ids = groupIds();
    if (ids.length === 0) return false;
    return ids.every(function(id) { return state[id] === true; });
  }

  function applyGroups(state) {
    tree.querySelectorAll("li.group").forEach(function(li) {
      var id = li.dataset.groupId;
      if (Object.prototype.hasOwnProperty.call(state, id)) {
        li.classList.toggle("expanded", !!state[id]);
        var btn = li.querySelector(".group-toggle");
        if (btn) btn.setAttribute("aria-expanded", String(!!state[id]));
      }
    });
    if (expandAll && !expandAll.disabled) {
      var all = isAllExpanded(currentState());
      expandAll.dataset.allExpanded = String(all);
      expandAll.textContent = all ? "Collapse all" : "Expand all";
    }
  }

  // Static pages keep the same "nav" key as the server so choices survive
  // rebuilds: ids missing from this tree are ignored and new groups keep the
  // defaults rendered into the page.
  var navKey = "nav";
  if (!live) {
    var saved = readLocal(navKey);
    if (saved && typeof saved === "object") {
      applyGroups(saved);
    } else {
      writeLocal(navKey, currentState());
    }
  }

  function saveGroup(id, expanded) {
    var stored = readLocal(navKey);
    if (!stored || typeof stored !== "object") stored = {};
    stored[id] = expanded;
    writeLocal(navKey, stored);
  }

  function query() { return "?uri=" + encodeURIComponent(uri); }

  tree.addEventListener("click", function(e) {
    var btn = e.target.closest(".group-toggle");
    if (!btn) return;
    var id = btn.dataset.groupId;
    if (live) {
      api("POST", "/api/nav/groups/" + encodeURIComponent(id) + "/toggle" + query())
        .then(function(r) { applyGroups(r.groups); })
        .catch(function(err) { console.error(err); });
      return;
    }
    var state = currentState();
    state[id] = !state[id];
    saveGroup(id, state[id]);
    applyGroups(state);
  });

  if (expandAll) {
    expandAll.addEventListener("click", function() {
      if (live) {
        api("POST", "/api/nav/toggle-all" + query())
          .then(function(r) { applyGroups(r.groups); })
          .catch(function(err) { console.error(err); });
        return;
      }
      var target = !isAllExpanded(currentState());
      var state = {};
      groupIds().forEach(function(id) { state[id] = target; });
      writeLocal(navKey, state);
      applyGroups(state);
    });
  }

  // ===== Sidebar =====
  var menuToggle = document.getElementById("menu-toggle");
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");

  function applySidebar(hidden) {
    body.classList.toggle("sidebar-hidden", !!hidden);
  }

  if (!live && readLocal("sidebar") !== null) applySidebar(readLocal("sidebar"));

  if (menuToggle) {
    menuToggle.addEventListener("click", function() {
      if (window.matchMedia("(max-width: 768px)").matches) {
        sidebar.classList.toggle("open");
        overlay.classList.toggle("visible");
        return;
      }
      var hidden = !body.classList.contains("sidebar-hidden");
      applySidebar(hidden);
      if (live) {
        api("PUT", "/api/state/sidebar", hidden).catch(function(err) { console.error(err); });
      } else {
        writeLocal("sidebar", hidden);
      }
    });
  }
  if (overlay) {
    overlay.addEventListener("click", function() {
      sidebar.classList.remove("open");
      overlay.classList.remove("visible");
    });
  }

  // ===== Code language tabs =====
  function selectLanguage(lang) {
    document.querySelectorAll(".multi-code-block").forEach(function(block) {
      var match = block.querySelector('.tab[data-language="' + lang + '"]');
      if (!match) return;
      block.dataset.selected = lang;
      block.querySelectorAll(".tab").forEach(function(tab) {
        var active = tab.dataset.language === lang;
        tab.classList.toggle("active", active);
        tab.setAttribute("aria-selected", String(active));
      });
      block.querySelectorAll(".panel").forEach(function(panel) {
        panel.hidden = panel.dataset.language !== lang;
      });
    });
  }

  if (!live && readLocal("language")) selectLanguage(readLocal("language"));

  document.addEventListener("click", function(e) {
    var tab = e.target.closest(".multi-code-block .tab");
    if (!tab) return;
    var lang = tab.dataset.language;
    selectLanguage(lang);
    if (live) {
      api("PUT", "/api/state/language", lang).catch(function(err) { console.error(err); });
    } else {
      writeLocal("language", lang);
    }
  });

  // ===== Table of contents =====
  document.querySelectorAll(".toc a[data-heading]").forEach(function(a) {
    var text = a.dataset.heading;
    var headings = document.querySelectorAll(".markdown-body h2, .markdown-body h3");
    for (var i = 0; i < headings.length; i++) {
      if (headings[i].textContent.trim() === text && headings[i].id) {
        a.setAttribute("href", "#" + headings[i].id);
        break;
      }
    }
  });

  // ===== Live updates =====
  if (live && window.WebSocket) {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var connect = function(delay) {
      var ws = new WebSocket(proto + location.host + home + "/ws/state");
      ws.onmessage = function(ev) {
        var change;
        try { change = JSON.parse(ev.data); } catch (e) { return; }
        if (change.key === "nav") applyGroups(change.value || {});
        if (change.key === "sidebar") applySidebar(change.value);
        if (change.key === "language") selectLanguage(change.value);
      };
      ws.onclose = function() {
        setTimeout(function() { connect(Math.min(delay * 2, 30000)); }, delay);
      };
    };
    connect(1000);
  }

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var searchIndex = null;

  fetch(home + "/search-index.json")
    .then(function(r) { return r.json(); })
    .then(function(data) { searchIndex = data; })
    .catch(function() { searchIndex = null; });

  if (searchInput && searchResults) {
    searchInput.addEventListener("input", function() {
      var q = this.value.toLowerCase().trim();
      searchResults.innerHTML = "";
      if (!q || !searchIndex) return;
      searchIndex.filter(function(entry) {
        return entry.title.toLowerCase().indexOf(q) !== -1 ||
          entry.content.toLowerCase().indexOf(q) !== -1;
      }).slice(0, 10).forEach(function(entry) {
        var li = document.createElement("li");
        var a = document.createElement("a");
        a.href = entry.path;
        a.textContent = entry.title;
        li.appendChild(a);
        searchResults.appendChild(li);
      });
    });
  }
})();
`
