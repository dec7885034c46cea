package api

import (
	"encoding/json"
	"fmt"
)

// PrintJSON writes v to stdout as pretty-printed JSON, one document per call.
func (c *Client) PrintJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}

// PrintData prints the data object of a document, falling back to the whole
// document when there is none.
func (c *Client) PrintData(doc Document) error {
	if data, ok := doc["data"]; ok {
		return c.PrintJSON(data)
	}
	return c.PrintJSON(doc)
}

// PrintItems prints each element of the document's data array as its own
// JSON document. An empty result set prints emptyMsg to stderr instead.
func (c *Client) PrintItems(doc Document, emptyMsg string) error {
	items := Items(doc)
	if len(items) == 0 {
		fmt.Fprintln(c.errOut, emptyMsg)
		return nil
	}

	for _, item := range items {
		if err := c.PrintJSON(item); err != nil {
			return err
		}
	}
	return nil
}

// Notice writes a message to stderr.
func (c *Client) Notice(msg string) {
	fmt.Fprintln(c.errOut, msg)
}

// Items returns the elements of the document's data array. A missing or
// non-array data field yields nil.
func Items(doc Document) []Document {
	list, ok := doc["data"].([]any)
	if !ok {
		return nil
	}

	items := make([]Document, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// MergeAuthors merges author info from includes.users into each tweet of the
// document's data array, keyed by author_id. It returns the users by id.
func MergeAuthors(doc Document) map[string]Document {
	users := usersByID(doc)

	for _, tweet := range Items(doc) {
		authorID, _ := tweet["author_id"].(string)
		author := users[authorID]
		tweet["author"] = Document{
			"username": author["username"],
			"name":     author["name"],
		}
	}
	return users
}

// MergeAuthor is the single-tweet variant of MergeAuthors, for documents
// whose data field is one tweet object. Without an includes.users expansion
// the tweet is left untouched.
func MergeAuthor(doc Document) {
	users := usersByID(doc)
	if len(users) == 0 {
		return
	}

	tweet, ok := doc["data"].(map[string]any)
	if !ok {
		return
	}
	authorID, _ := tweet["author_id"].(string)
	author := users[authorID]
	tweet["author"] = Document{
		"username": author["username"],
		"name":     author["name"],
	}
}

// usersByID indexes includes.users by user id.
func usersByID(doc Document) map[string]Document {
	users := map[string]Document{}

	includes, ok := doc["includes"].(map[string]any)
	if !ok {
		return users
	}
	list, ok := includes["users"].([]any)
	if !ok {
		return users
	}

	for _, e := range list {
		u, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := u["id"].(string); ok {
			users[id] = u
		}
	}
	return users
}
