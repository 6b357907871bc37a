package blog

import "sort"

// DefaultRecommendLimit is the widget size on the post detail page.
const DefaultRecommendLimit = 3

// Recommend selects up to limit related posts for focal from pool using a
// three-tier fallback cascade: same category, then shared tags, then pure
// popularity. Unpublished candidates and focal itself are never returned,
// and the result is deterministic for identical inputs.
func Recommend(focal Post, pool []Post, limit int) []Post {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	eligible := make([]Post, 0, len(pool))
	for _, p := range pool {
		if p.ID != focal.ID && p.IsPublished {
			eligible = append(eligible, p)
		}
	}

	var sameCategory, sharedTag, rest []Post
	for _, p := range eligible {
		switch {
		case p.Category == focal.Category:
			sameCategory = append(sameCategory, p)
		case sharedTagCount(p.Tags, focal.Tags) > 0:
			sharedTag = append(sharedTag, p)
		default:
			rest = append(rest, p)
		}
	}

	sort.SliceStable(sameCategory, func(i, j int) bool {
		return popularityLess(sameCategory[i], sameCategory[j])
	})
	result := take(sameCategory, limit)
	if len(result) >= limit {
		return result
	}

	sort.SliceStable(sharedTag, func(i, j int) bool {
		a, b := sharedTag[i], sharedTag[j]
		am, bm := sharedTagCount(a.Tags, focal.Tags), sharedTagCount(b.Tags, focal.Tags)
		if am != bm {
			return am > bm
		}
		return popularityLess(a, b)
	})
	result = append(result, take(sharedTag, limit-len(result))...)
	if len(result) >= limit {
		return result
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return popularityLess(rest[i], rest[j])
	})
	return append(result, take(rest, limit-len(result))...)
}

// popularityLess ranks featured posts first, then by views descending, then
// by creation time descending.
func popularityLess(a, b Post) bool {
	if a.IsFeatured != b.IsFeatured {
		return a.IsFeatured
	}
	if a.Views != b.Views {
		return a.Views > b.Views
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func sharedTagCount(tags, focalTags []string) int {
	n := 0
	for _, t := range tags {
		for _, ft := range focalTags {
			if t == ft {
				n++
				break
			}
		}
	}
	return n
}

func take(posts []Post, n int) []Post {
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}
