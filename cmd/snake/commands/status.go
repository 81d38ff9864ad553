package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wrapsnake/engine/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a session from a snake server",
	Args: func(c *cobra.Command, args []string) error {
		if len(sessionID) == 0 {
			return errors.New("session id is required")
		}
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		sr, err := getStatus(apiAddr, sessionID)
		if err != nil {
			return err
		}
		spew.Dump(sr)
		return nil
	},
}

var (
	sessionID string
)

func init() {
	statusCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "the id of the session to get the status of")
	statusCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the api server")
}

func getStatus(addr, id string) (*api.SessionResponse, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("%s/sessions/%s", addr, id))
	if err != nil {
		return nil, errors.Wrap(err, "error while getting status")
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("status request failed: %s: %s", resp.Status, data)
	}

	sr := &api.SessionResponse{}
	err = json.Unmarshal(data, sr)
	if err != nil {
		log.WithFields(log.Fields{
			"resp": string(data),
			"id":   id,
		}).Info("unable to unmarshal status response")
		return nil, errors.Wrap(err, "unable to unmarshal status response")
	}
	return sr, nil
}
