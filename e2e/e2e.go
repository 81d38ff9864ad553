// Package e2e checks a running snake server over its HTTP API.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/wrapsnake/engine/api"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) get(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return errors.Errorf("GET %s: %s", path, resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}

func (c *client) listSessions() (*api.SessionsResponse, error) {
	res := &api.SessionsResponse{}
	return res, c.get("/sessions", res)
}

func (c *client) sessionStatus(id string) (*api.SessionResponse, *api.FramesResponse, error) {
	st := &api.SessionResponse{}
	if err := c.get(fmt.Sprintf("/sessions/%s", id), st); err != nil {
		return nil, nil, err
	}
	frames := &api.FramesResponse{}
	if err := c.get(fmt.Sprintf("/sessions/%s/frames?limit=1000", id), frames); err != nil {
		return nil, nil, err
	}
	return st, frames, nil
}
