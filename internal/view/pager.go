package view

import "fmt"

// PageSize is the number of monsters shown per page.
const PageSize = 10

// Pager is a cursor over a list of Total items. Page is always within
// [0, TotalPages()-1], or 0 for an empty list.
type Pager struct {
	Page  int
	Size  int
	Total int
}

func NewPager(total int) Pager {
	if total < 0 {
		total = 0
	}
	return Pager{Size: PageSize, Total: total}
}

// TotalPages is ceil(Total/Size).
func (p Pager) TotalPages() int {
	if p.Total <= 0 {
		return 0
	}
	return (p.Total + p.size() - 1) / p.size()
}

func (p Pager) size() int {
	if p.Size <= 0 {
		return PageSize
	}
	return p.Size
}

// Bounds returns the half-open range of item indices on the current page,
// clipped to the list.
func (p Pager) Bounds() (start, end int) {
	start = p.Page * p.size()
	end = start + p.size()
	if end > p.Total {
		end = p.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// Next advances one page. It reports whether the cursor moved.
func (p *Pager) Next() bool {
	if p.Page < p.TotalPages()-1 {
		p.Page++
		return true
	}
	return false
}

// Prev goes back one page. It reports whether the cursor moved.
func (p *Pager) Prev() bool {
	if p.Page > 0 {
		p.Page--
		return true
	}
	return false
}

// Clamp pulls the cursor back into range after Total changed.
func (p *Pager) Clamp() {
	last := p.TotalPages() - 1
	if p.Page > last {
		p.Page = last
	}
	if p.Page < 0 {
		p.Page = 0
	}
}

// ControlsVisible reports whether prev/next controls are shown: only when
// there is strictly more than one page.
func (p Pager) ControlsVisible() bool {
	return p.Total > p.size()
}

// Indicator is the page text, with 1-based page and item numbers.
func (p Pager) Indicator() string {
	start, end := p.Bounds()
	return fmt.Sprintf("Page %d of %d (monsters %d..%d)", p.Page+1, p.TotalPages(), start+1, end)
}
