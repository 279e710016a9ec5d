// Package annotate builds the JavaScript that decorates post elements in
// the live page: score badges, niche badges, and the quick-stats button.
// Every snippet is idempotent per marker class, so re-running one against
// an already-decorated element never duplicates visuals.
package annotate

import (
	"encoding/json"
	"fmt"

	"github.com/thibautnext/x-growth-extension/internal/counts"
	"github.com/thibautnext/x-growth-extension/internal/niche"
	"github.com/thibautnext/x-growth-extension/internal/score"
	"github.com/thibautnext/x-growth-extension/internal/types"
)

// Annotation markers written into the page. The processed attribute is the
// Processed-Set: membership is checked by value on the element itself, and
// clearing the set is one page-wide attribute sweep.
const (
	AttrProcessed = "data-xg-processed"
	AttrID        = "data-xg-id"
	AttrNiche     = "data-xg-niche"

	ScoreBadgeClass = "xg-score-badge"
	NicheBadgeClass = "xg-niche-badge"
	StatsBtnClass   = "xg-stats-btn"
	TooltipClass    = "xg-stats-tooltip"
)

// jsString marshals s into a JS string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// target returns a querySelector expression for the post stamped with id.
func target(id int) string {
	return fmt.Sprintf(`document.querySelector('article[%s="%d"]')`, AttrID, id)
}

// ScoreBadgeJS inserts the tier badge into the post's action-button row,
// falling back to a positioned overlay on the article. No-op if the badge
// already exists.
func ScoreBadgeJS(id int, tier score.Tier) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el || el.querySelector('.%s')) return;
		const badge = document.createElement('div');
		badge.className = '%s ' + %s;
		badge.textContent = %s + ' ' + %s;
		const bar = el.querySelector('[role="group"]');
		if (bar) {
			bar.style.position = 'relative';
			bar.appendChild(badge);
		} else {
			el.style.position = 'relative';
			el.appendChild(badge);
		}
	})()`, target(id), ScoreBadgeClass, ScoreBadgeClass,
		jsString(tier.Name), jsString(tier.Glyph), jsString(tier.Label))
}

// RemoveScoreBadgeJS strips the score badge, used when scoring is toggled
// off and the element is reprocessed.
func RemoveScoreBadgeJS(id int) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) return;
		const badge = el.querySelector('.%s');
		if (badge) badge.remove();
	})()`, target(id), ScoreBadgeClass)
}

// NicheJS applies the tri-state niche outcome. Hit adds the badge once and
// marks the attribute true; Miss marks it false and strips any stale badge;
// NotConfigured removes both badge and attribute. Unlike the add-once
// badges this is a toggle: the absent states actively clean up.
func NicheJS(id int, result niche.Result) string {
	switch result {
	case niche.Hit:
		return fmt.Sprintf(`(() => {
			const el = %s;
			if (!el) return;
			el.setAttribute('%s', 'true');
			if (el.querySelector('.%s')) return;
			const badge = document.createElement('div');
			badge.className = '%s';
			badge.textContent = 'Niche';
			el.appendChild(badge);
		})()`, target(id), AttrNiche, NicheBadgeClass, NicheBadgeClass)
	case niche.Miss:
		return fmt.Sprintf(`(() => {
			const el = %s;
			if (!el) return;
			el.setAttribute('%s', 'false');
			const badge = el.querySelector('.%s');
			if (badge) badge.remove();
		})()`, target(id), AttrNiche, NicheBadgeClass)
	default: // NotConfigured
		return fmt.Sprintf(`(() => {
			const el = %s;
			if (!el) return;
			el.removeAttribute('%s');
			const badge = el.querySelector('.%s');
			if (badge) badge.remove();
		})()`, target(id), AttrNiche, NicheBadgeClass)
	}
}

// StatsButtonJS attaches the clickable stats control once per post. A click
// reports the author handle and the button's viewport position through the
// notify binding; Go answers by evaluating TooltipJS.
func StatsButtonJS(id int, handle string, binding string) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el || el.querySelector('.%s')) return;
		const btn = document.createElement('div');
		btn.className = '%s';
		btn.textContent = '📊';
		btn.title = 'Stats @' + %s;
		btn.addEventListener('click', (e) => {
			e.stopPropagation();
			e.preventDefault();
			if (btn.classList.contains('active')) {
				window.__xg.closeTooltip();
				return;
			}
			window.__xg.closeTooltip();
			btn.classList.add('active');
			const rect = btn.getBoundingClientRect();
			window[%s](JSON.stringify({
				kind: 'stats',
				handle: %s,
				x: rect.left,
				y: rect.bottom
			}));
		});
		const bar = el.querySelector('[role="group"]');
		if (bar) bar.appendChild(btn);
		else el.appendChild(btn);
	})()`, target(id), StatsBtnClass, StatsBtnClass, jsString(handle),
		jsString(binding), jsString(handle))
}

// TooltipJS renders the stats tooltip for handle at the reported position,
// closing any other open tooltip first.
func TooltipJS(handle string, snap types.AuthorSnapshot, x, y float64) string {
	followers := jsString(counts.Format(snap.Followers))
	engagement := jsString(fmt.Sprintf("%.2f%%", snap.AvgEngagement))
	return fmt.Sprintf(`window.__xg.showTooltip(%s, %s, %s, %s, %.1f, %.1f)`,
		jsString(handle), followers, engagement, jsString(snap.Reach), x, y)
}

// ClearProcessedJS empties the Processed-Set: every article loses its
// processed stamp and id, so the next scan revisits all of them. Always a
// full clear, never partial.
func ClearProcessedJS() string {
	return fmt.Sprintf(`document.querySelectorAll('article[%s]').forEach(el => {
		el.removeAttribute('%s');
		el.removeAttribute('%s');
	})`, AttrProcessed, AttrProcessed, AttrID)
}
