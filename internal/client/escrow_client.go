package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

// HTTPEscrowClient implements domain.EscrowCustodian against an external
// custody service. The asset kind travels in the hold request, so one client
// can back every kind in the custodian registry; embedders with
// kind-specific custody register separate clients instead.
type HTTPEscrowClient struct {
	Address string
}

func NewHTTPEscrowClient(address string) (*HTTPEscrowClient, error) {
	return &HTTPEscrowClient{
		Address: address,
	}, nil
}

type holdRequest struct {
	From      string `json:"from"`
	Kind      string `json:"kind"`
	Token     string `json:"token"`
	Partition string `json:"partition"`
	TokenID   string `json:"token_id,omitempty"`
	Amount    string `json:"amount,omitempty"`
	ClassID   string `json:"class_id,omitempty"`
	NonceID   string `json:"nonce_id,omitempty"`
}

type holdResponse struct {
	CustodyToken string `json:"custody_token"`
}

type releaseRequest struct {
	CustodyToken string `json:"custody_token"`
	To           string `json:"to"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPEscrowClient) Hold(from common.Address, asset domain.AssetRef) (string, error) {
	req := holdRequest{
		From:      from.Hex(),
		Kind:      string(asset.Kind),
		Token:     asset.Token.Hex(),
		Partition: asset.Partition.Hex(),
	}
	if asset.TokenID != nil {
		req.TokenID = asset.TokenID.String()
	}
	if asset.Amount != nil {
		req.Amount = asset.Amount.String()
	}
	if asset.ClassID != nil {
		req.ClassID = asset.ClassID.String()
	}
	if asset.NonceID != nil {
		req.NonceID = asset.NonceID.String()
	}
	requestBodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	response, err := http.Post(fmt.Sprintf("%s/custody/hold", c.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var holdResp holdResponse
		if err := json.Unmarshal(responseBodyBytes, &holdResp); err != nil {
			return "", err
		}
		if holdResp.CustodyToken == "" {
			return "", domain.ErrEscrowHold
		}
		return holdResp.CustodyToken, nil
	}
	var errorResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResp); err != nil {
		return "", err
	}
	return "", errors.New(errorResp.Error)
}

func (c *HTTPEscrowClient) Release(custodyToken string, to common.Address) error {
	requestBodyBytes, err := json.Marshal(releaseRequest{
		CustodyToken: custodyToken,
		To:           to.Hex(),
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/custody/release", c.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errorResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResp); err != nil {
		return err
	}
	return errors.New(errorResp.Error)
}
