package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// signParams produces the request signature the upload API expects: the
// sorted key=value pairs joined with '&', concatenated with the API secret,
// hashed with SHA-1. The file payload and api_key are never part of the
// signature base.
func signParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	base := strings.Join(pairs, "&") + apiSecret
	sum := sha1.Sum([]byte(base))
	return hex.EncodeToString(sum[:])
}
