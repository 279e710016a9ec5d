package feed

import "fmt"

// rawPost is the per-element record the extraction script returns. Counts
// are the compact display strings; parsing happens on the Go side.
type rawPost struct {
	ID           int    `json:"id"`
	AuthorHandle string `json:"authorHandle"`
	Text         string `json:"text"`
	Likes        string `json:"likes"`
	Retweets     string `json:"retweets"`
	Replies      string `json:"replies"`
	Error        string `json:"error"`
}

// extractJS enumerates posts that don't carry the processed stamp yet,
// stamps each one (with a sequential id for later targeting), and pulls
// out the engagement labels, text, and author handle. A post whose
// sub-elements are malformed still gets stamped — it is skipped, not
// retried — and comes back with its error set so the scanner can log it.
func extractJS(processedAttr, idAttr string) string {
	return fmt.Sprintf(`
		(function() {
			const results = [];
			const fresh = document.querySelectorAll('%s:not([%s])');

			fresh.forEach(el => {
				window.__xgSeq = (window.__xgSeq || 0) + 1;
				const id = window.__xgSeq;
				el.setAttribute('%s', 'true');
				el.setAttribute('%s', String(id));

				try {
					// Engagement counts live in the button aria-labels
					// (e.g. "1,234 Likes. Like"); keep the leading compact
					// number, commas stripped.
					const metric = (selector) => {
						const btn = el.querySelector(selector);
						if (!btn) return '0';
						const label = btn.getAttribute('aria-label');
						if (label) {
							const m = label.match(/^([\d,.]+[KkMm]?)/);
							if (m) return m[1].replace(/,/g, '');
						}
						return btn.textContent?.trim().replace(/,/g, '') || '0';
					};

					const textEl = el.querySelector('%s');

					// First profile link that isn't a status or photo link
					// names the author.
					let handle = '';
					for (const link of el.querySelectorAll('a[role="link"][href^="/"]')) {
						const href = link.getAttribute('href') || '';
						if (href.includes('/status/') || href.includes('/photo/')) continue;
						const m = href.match(/^\/([^/]+)/);
						if (m) { handle = m[1]; break; }
					}

					results.push({
						id: id,
						authorHandle: handle,
						text: textEl?.textContent || '',
						likes: metric('%s'),
						retweets: metric('%s'),
						replies: metric('%s'),
						error: ''
					});
				} catch (e) {
					results.push({id: id, error: String(e)});
				}
			});

			return results;
		})()
	`, TweetArticle, processedAttr, processedAttr, idAttr,
		TweetText, LikeButton, RetweetButton, ReplyButton)
}
