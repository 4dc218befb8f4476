// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package urlbuilder rewrites AGS resource URLs: it appends sub-resource
// path segments, merges query parameters in order, and strips trailing
// sub-resource segments, while leaving every untouched URL component
// byte-for-byte as it was given.
package urlbuilder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/openlms/lti-ags-service/pkg/errors"
)

// Param is a single query parameter to merge into a URL. Parameters are
// applied in the order supplied; a later Param with a repeated key wins.
type Param struct {
	Key   string
	Value string
}

// Build rewrites baseURL by appending pathSuffix (leading slashes
// normalized to exactly one) and merging params into the query string.
// Existing query pairs are preserved in place; a param whose key already
// exists replaces that pair's value, otherwise it is appended. Scheme,
// userinfo, host, port and fragment pass through unchanged. With an
// empty suffix and no params the input is returned byte-for-byte.
func Build(baseURL string, pathSuffix string, params ...Param) (string, error) {
	u, err := parse(baseURL)
	if err != nil {
		return "", err
	}

	if pathSuffix == "" && len(params) == 0 {
		return baseURL, nil
	}

	if pathSuffix != "" {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimLeft(pathSuffix, "/")
		u.RawPath = ""
	}

	u.RawQuery = mergeQuery(u.RawQuery, params)

	return u.String(), nil
}

// Extract reconstructs rawURL without the first path occurrence of
// "/<trailingSegment>". It is the inverse-flavored companion of Build,
// used to recover a line item URL from its scores or results sub-resource
// URL. With an empty segment the input is returned unchanged.
func Extract(rawURL string, trailingSegment string) (string, error) {
	u, err := parse(rawURL)
	if err != nil {
		return "", err
	}

	if trailingSegment == "" {
		return rawURL, nil
	}

	segment := "/" + strings.TrimLeft(trailingSegment, "/")
	u.Path = strings.Replace(u.Path, segment, "", 1)
	u.RawPath = ""

	return u.String(), nil
}

func parse(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewValidation(fmt.Sprintf("malformed URL %q", rawURL), err)
	}
	if u.Host == "" {
		return nil, errors.NewValidation(fmt.Sprintf("URL %q has no host", rawURL))
	}
	return u, nil
}

// mergeQuery merges params into a raw query string. Untouched pairs are
// carried over as raw text so their original encoding survives.
func mergeQuery(rawQuery string, params []Param) string {
	var pairs []string
	if rawQuery != "" {
		pairs = strings.Split(rawQuery, "&")
	}

	for _, p := range params {
		replaced := false
		for i, pair := range pairs {
			key, _, _ := strings.Cut(pair, "=")
			if key == p.Key {
				pairs[i] = key + "=" + url.QueryEscape(p.Value)
				replaced = true
				break
			}
		}
		if !replaced {
			pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
		}
	}

	return strings.Join(pairs, "&")
}
