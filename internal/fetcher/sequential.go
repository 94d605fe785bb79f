package fetcher

import (
	"context"
)

// Sequential fetches urls one at a time, in list order, over client.
//
// onResult is called for every successful fetch before the next request
// starts. The first failure stops the run: the remaining URLs are not
// requested and the failure is returned as a *FetchError. A nil onResult
// is allowed.
func Sequential(ctx context.Context, client *Client, urls []string, opts Options, onResult func(Result)) error {
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return &FetchError{URL: url, Index: i, Err: err}
		}

		result := fetchOne(ctx, client, opts, 0, i, url)
		if result.Error != nil {
			return result.Error
		}
		if onResult != nil {
			onResult(result)
		}
	}
	return nil
}
