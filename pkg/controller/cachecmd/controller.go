// Package cachecmd removes cached API and git lookups.
package cachecmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	cache Cache
}

type Cache interface {
	Prune(all bool) (int, error)
	Dir() string
}

func New(cache Cache) *Controller {
	return &Controller{cache: cache}
}

// Clean removes expired entries, or every entry if all is true.
func (c *Controller) Clean(logE *logrus.Entry, all bool) error {
	n, err := c.cache.Prune(all)
	if err != nil {
		return fmt.Errorf("clean the cache: %w", err)
	}
	logE.WithFields(logrus.Fields{
		"cache_dir":       c.cache.Dir(),
		"removed_entries": n,
	}).Info("cleaned the cache")
	return nil
}
