package utils

import "time"

// SlotCachePrefix is the prefix for cached day-availability responses.
const SlotCachePrefix = "slots:"

// SlotCacheTTL keeps cached availability short-lived; the rule set is the
// source of truth and callers may always recompute.
const SlotCacheTTL = time.Minute
