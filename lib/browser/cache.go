package browser

import (
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// cache keeps the registered browsers.
// Closed browsers keep their index so that indexes are never reused.
type cache struct {
	entries  []*cacheEntry
	aliases  map[string]int
	selected *cacheEntry
}

type cacheEntry struct {
	index  int
	alias  string
	driver selenium.WebDriver
	closed bool
}

func newCache() *cache {
	return &cache{aliases: map[string]int{}}
}

func (c *cache) register(wd selenium.WebDriver, alias string) int {
	entry := &cacheEntry{index: len(c.entries) + 1, alias: alias, driver: wd}
	c.entries = append(c.entries, entry)
	if alias != "" {
		c.aliases[alias] = entry.index
	}
	c.selected = entry
	return entry.index
}

func (c *cache) current() selenium.WebDriver {
	if c.selected == nil || c.selected.closed {
		return nil
	}
	return c.selected.driver
}

func (c *cache) currentIndex() int {
	if c.selected == nil || c.selected.closed {
		return 0
	}
	return c.selected.index
}

// switchTo selects the browser by alias or index
func (c *cache) switchTo(indexOrAlias string) error {
	entry, err := c.get(indexOrAlias)
	if err != nil {
		return trace.Wrap(err)
	}
	c.selected = entry
	return nil
}

func (c *cache) get(indexOrAlias string) (*cacheEntry, error) {
	indexOrAlias = strings.TrimSpace(indexOrAlias)
	index, ok := c.aliases[indexOrAlias]
	if !ok {
		var err error
		index, err = strconv.Atoi(indexOrAlias)
		if err != nil {
			return nil, trace.NotFound("non-existing index or alias %q", indexOrAlias)
		}
	}
	if index < 1 || index > len(c.entries) || c.entries[index-1].closed {
		return nil, trace.NotFound("non-existing index or alias %q", indexOrAlias)
	}
	return c.entries[index-1], nil
}

// closeCurrent quits the current browser
func (c *cache) closeCurrent() error {
	if c.selected == nil || c.selected.closed {
		return nil
	}
	err := c.selected.driver.Quit()
	c.markClosed(c.selected)
	c.selected = nil
	return trace.Wrap(err)
}

// closeAll quits every open browser and resets the cache
func (c *cache) closeAll() error {
	var errors []error
	for _, entry := range c.entries {
		if entry.closed {
			continue
		}
		if err := entry.driver.Quit(); err != nil {
			errors = append(errors, trace.Wrap(err))
		}
	}
	c.entries = nil
	c.aliases = map[string]int{}
	c.selected = nil
	return trace.NewAggregate(errors...)
}

func (c *cache) markClosed(entry *cacheEntry) {
	entry.closed = true
	if entry.alias != "" {
		delete(c.aliases, entry.alias)
	}
}

// ids returns indexes of open browsers
func (c *cache) ids() []int {
	ids := []int{}
	for _, entry := range c.entries {
		if !entry.closed {
			ids = append(ids, entry.index)
		}
	}
	return ids
}

// aliasMap returns aliases of open browsers mapped to their indexes
func (c *cache) aliasMap() map[string]int {
	out := make(map[string]int, len(c.aliases))
	for alias, index := range c.aliases {
		out[alias] = index
	}
	return out
}

func (c *cache) drivers() (out []selenium.WebDriver) {
	for _, entry := range c.entries {
		if !entry.closed {
			out = append(out, entry.driver)
		}
	}
	return out
}
