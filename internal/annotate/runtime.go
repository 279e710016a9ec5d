package annotate

import "fmt"

// RuntimeJS returns the page bootstrap script. It is installed with
// Page.addScriptToEvaluateOnNewDocument so it survives navigations, and
// evaluated once on attach for the already-loaded page. It injects badge
// styles, the tooltip helpers (at most one tooltip open page-wide), the
// MutationObserver that reports feed growth, and the reply-submission hook.
// Everything funnels through a single CDP binding named by binding.
func RuntimeJS(binding string) string {
	return fmt.Sprintf(runtimeTemplate, binding)
}

const runtimeTemplate = `(() => {
	if (window.__xg) return;

	const notify = (payload) => {
		const fn = window[%q];
		if (typeof fn === 'function') fn(JSON.stringify(payload));
	};

	const style = document.createElement('style');
	style.textContent = ` + "`" + `
		.xg-score-badge {
			position: absolute; right: 0; top: -2px;
			display: inline-flex; align-items: center; gap: 3px;
			font-size: 11px; font-weight: 700; padding: 1px 6px;
			border-radius: 9px; background: rgba(29, 155, 240, 0.1);
			pointer-events: none; z-index: 10;
		}
		.xg-score-badge.high { color: #00ba7c; }
		.xg-score-badge.medium { color: #b8860b; }
		.xg-score-badge.low { color: #f4212e; }
		.xg-niche-badge {
			position: absolute; left: 8px; top: 8px;
			font-size: 10px; font-weight: 700; padding: 1px 6px;
			border-radius: 9px; color: #fff; background: #7856ff;
			pointer-events: none; z-index: 10;
		}
		.xg-stats-btn { cursor: pointer; margin-left: 8px; font-size: 14px; }
		.xg-stats-btn.active { opacity: 0.6; }
		.xg-stats-tooltip {
			position: fixed; z-index: 10000; min-width: 180px;
			padding: 10px 12px; border-radius: 10px;
			background: #15202b; color: #f7f9f9; font-size: 12px;
			box-shadow: 0 4px 16px rgba(0,0,0,0.4);
		}
		.xg-stats-tooltip .xg-header { font-weight: 700; margin-bottom: 6px; }
		.xg-stats-tooltip .xg-row { display: flex; justify-content: space-between; gap: 16px; }
		.xg-stats-tooltip .xg-value { font-weight: 600; }
	` + "`" + `;
	(document.head || document.documentElement).appendChild(style);

	window.__xg = {
		tooltip: null,

		closeTooltip() {
			if (this.tooltip) {
				this.tooltip.remove();
				this.tooltip = null;
			}
			document.querySelectorAll('.xg-stats-btn.active')
				.forEach(b => b.classList.remove('active'));
		},

		showTooltip(handle, followers, engagement, reach, x, y) {
			this.closeTooltip();
			const tip = document.createElement('div');
			tip.className = 'xg-stats-tooltip';
			const row = (label, value) => {
				const r = document.createElement('div');
				r.className = 'xg-row';
				const l = document.createElement('span');
				l.textContent = label;
				const v = document.createElement('span');
				v.className = 'xg-value';
				v.textContent = value;
				r.append(l, v);
				return r;
			};
			const header = document.createElement('div');
			header.className = 'xg-header';
			header.textContent = '@' + handle;
			tip.append(header,
				row('Followers', followers),
				row('Avg Engagement', engagement),
				row('Est. Reach', reach));
			tip.style.left = (x + 10) + 'px';
			tip.style.top = (y + 10) + 'px';
			document.body.appendChild(tip);
			this.tooltip = tip;
		}
	};

	// Close the tooltip on any click outside the stats controls.
	document.addEventListener('click', (e) => {
		if (!e.target.closest('.xg-stats-btn') && !e.target.closest('.xg-stats-tooltip')) {
			window.__xg.closeTooltip();
		}
	}, true);

	// Report reply submissions: a click on a tweet button while the reply
	// composer holds text.
	document.addEventListener('click', (e) => {
		if (!e.target.closest('[data-testid="tweetButtonInline"]') &&
			!e.target.closest('[data-testid="tweetButton"]')) return;
		const composer = document.querySelector('[data-testid="tweetTextarea_0"]');
		if (composer && composer.textContent.trim().length > 0) {
			notify({kind: 'reply'});
		}
	}, true);

	// Report structural growth under the feed root. Debouncing happens on
	// the Go side, so this fires for every burst member.
	const start = () => {
		const observer = new MutationObserver(() => notify({kind: 'mutation'}));
		observer.observe(document.body, {childList: true, subtree: true});
		notify({kind: 'mutation'});
	};
	if (document.body) start();
	else document.addEventListener('DOMContentLoaded', start);
})()`
