package view

// CopyHandlerJS is the client script served alongside the button snippet.
// All runtime knobs travel as data attributes on the button element, so
// the script itself is static and cacheable.
const CopyHandlerJS = `(function () {
	"use strict";

	function selectText(el) {
		var range = document.createRange();
		range.selectNodeContents(el);
		var selection = window.getSelection();
		selection.removeAllRanges();
		selection.addRange(range);
		return selection.toString();
	}

	function copyText(text) {
		if (navigator.clipboard && navigator.clipboard.writeText) {
			return navigator.clipboard.writeText(text);
		}
		var area = document.createElement("textarea");
		area.value = text;
		area.style.position = "fixed";
		area.style.opacity = "0";
		document.body.appendChild(area);
		area.select();
		try {
			document.execCommand("copy");
		} finally {
			document.body.removeChild(area);
		}
		return Promise.resolve();
	}

	function track(button) {
		var url = button.getAttribute("data-track-url");
		if (!url) {
			return;
		}
		var payload = JSON.stringify({
			target_id: button.getAttribute("data-copy-target") || "",
			page_url: button.getAttribute("data-page-url") || window.location.href,
			token: button.getAttribute("data-track-token") || ""
		});
		if (navigator.sendBeacon) {
			navigator.sendBeacon(url, new Blob([payload], { type: "application/json" }));
			return;
		}
		fetch(url, {
			method: "POST",
			headers: { "Content-Type": "application/json" },
			body: payload,
			keepalive: true
		}).catch(function () {});
	}

	function onClick(event) {
		var button = event.currentTarget;
		var selector = button.getAttribute("data-copy-target");
		var target = selector ? document.querySelector(selector) : null;
		if (!target) {
			return;
		}

		var text = target.value !== undefined ? target.value : selectText(target);
		copyText(text).then(function () {
			var original = button.getAttribute("data-original-text") || button.textContent;
			var successMS = parseInt(button.getAttribute("data-success-ms"), 10) || 2000;
			button.textContent = "Copied!";
			if (button.getAttribute("data-disable-on-copy") === "1") {
				button.disabled = true;
			}
			setTimeout(function () {
				button.textContent = original;
				button.disabled = false;
			}, successMS);
			track(button);
		});
	}

	function bind() {
		var buttons = document.querySelectorAll(".copy-the-code-button");
		for (var i = 0; i < buttons.length; i++) {
			if (!buttons[i].__copyBound) {
				buttons[i].__copyBound = true;
				buttons[i].addEventListener("click", onClick);
			}
		}
	}

	if (document.readyState === "loading") {
		document.addEventListener("DOMContentLoaded", bind);
	} else {
		bind();
	}
})();
`
