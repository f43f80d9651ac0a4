package fluxeval

import "sort"

// Collection maps site ID to its tables by source label.
type Collection struct {
	XR map[string]map[string]*Table // [site][source label]
}

func NewCollection() *Collection {
	return &Collection{XR: make(map[string]map[string]*Table)}
}

// Add registers a table under its site and source label.
func (c *Collection) Add(t *Table) {
	if _, ok := c.XR[t.Site]; !ok {
		c.XR[t.Site] = make(map[string]*Table)
	}
	c.XR[t.Site][t.Nam] = t
}

// Get returns the table for a site and source label, nil if absent.
func (c *Collection) Get(site, nam string) *Table {
	if m, ok := c.XR[site]; ok {
		return m[nam]
	}
	return nil
}

// Sites returns the site IDs in sorted order.
func (c *Collection) Sites() []string {
	ss := make([]string, 0, len(c.XR))
	for s := range c.XR {
		ss = append(ss, s)
	}
	sort.Strings(ss)
	return ss
}

// Merge folds another collection's tables into c.
func (c *Collection) Merge(o *Collection) {
	for _, m := range o.XR {
		for _, t := range m {
			c.Add(t)
		}
	}
}
