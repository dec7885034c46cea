package api

import (
	"context"
	"net/url"
	"strings"
)

// tweetLookupBatch is the maximum number of ids accepted by /2/tweets.
const tweetLookupBatch = 100

// EnrichTweets fills in tweets that are missing their text, as bookmark
// listings sometimes return id-only entries. Missing tweets are fetched in
// batches through /2/tweets and the results merged back in place. Lookup
// failures leave the original entries untouched.
func (c *Client) EnrichTweets(ctx context.Context, tweets []Document) {
	var missing []string
	for _, t := range tweets {
		if text, _ := t["text"].(string); text == "" {
			if id, ok := t["id"].(string); ok {
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return
	}

	full := map[string]Document{}
	for start := 0; start < len(missing); start += tweetLookupBatch {
		batch := missing[start:min(start+tweetLookupBatch, len(missing))]

		params := url.Values{}
		params.Set("ids", strings.Join(batch, ","))
		params.Set("tweet.fields", TweetFieldsBasic)
		params.Set("expansions", ExpandAuthor)
		params.Set("user.fields", UserFieldsBasic)

		doc, err := c.Get(ctx, "/tweets", params)
		if err != nil {
			continue
		}
		MergeAuthors(doc)
		for _, t := range Items(doc) {
			if id, ok := t["id"].(string); ok {
				full[id] = t
			}
		}
	}

	for _, t := range tweets {
		id, _ := t["id"].(string)
		if details, ok := full[id]; ok {
			for k, v := range details {
				t[k] = v
			}
		}
	}
}
