package api

import "context"

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends a question to the assistant endpoint (POST /chat/) and returns
// its reply.
func (c *Client) Chat(ctx context.Context, query string) (string, error) {
	var out chatResponse
	if err := c.post(ctx, "/chat/", chatRequest{Query: query}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
