package client

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

func TestHoldAndRelease(t *testing.T) {
	var gotHold holdRequest
	var gotRelease releaseRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/custody/hold":
			if err := json.NewDecoder(r.Body).Decode(&gotHold); err != nil {
				t.Errorf("decoding hold request: %v", err)
			}
			json.NewEncoder(w).Encode(holdResponse{CustodyToken: "tok-123"})
		case "/custody/release":
			if err := json.NewDecoder(r.Body).Decode(&gotRelease); err != nil {
				t.Errorf("decoding release request: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	escrow, err := NewHTTPEscrowClient(server.URL)
	if err != nil {
		t.Fatalf("NewHTTPEscrowClient: %v", err)
	}

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	token, err := escrow.Hold(from, domain.AssetRef{
		Kind:    domain.KindBondUnit,
		Token:   common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Amount:  big.NewInt(500),
		ClassID: big.NewInt(2),
		NonceID: big.NewInt(5),
	})
	if err != nil {
		t.Fatalf("Hold: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("custody token = %q, want tok-123", token)
	}
	if gotHold.From != from.Hex() || gotHold.Kind != "BOND_UNIT" || gotHold.Amount != "500" {
		t.Errorf("hold request = %+v", gotHold)
	}
	if gotHold.TokenID != "" {
		t.Errorf("nil token id serialized as %q, want omitted", gotHold.TokenID)
	}

	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	if err := escrow.Release(token, to); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if gotRelease.CustodyToken != "tok-123" || gotRelease.To != to.Hex() {
		t.Errorf("release request = %+v", gotRelease)
	}
}

func TestHoldServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(errorResponse{Error: "insufficient balance"})
	}))
	defer server.Close()

	escrow, _ := NewHTTPEscrowClient(server.URL)
	_, err := escrow.Hold(common.HexToAddress("0x11"), domain.AssetRef{Kind: domain.KindFungible, Amount: big.NewInt(1)})
	if err == nil || err.Error() != "insufficient balance" {
		t.Fatalf("Hold error = %v, want service error text", err)
	}
}

func TestHoldRejectsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(holdResponse{})
	}))
	defer server.Close()

	escrow, _ := NewHTTPEscrowClient(server.URL)
	_, err := escrow.Hold(common.HexToAddress("0x11"), domain.AssetRef{Kind: domain.KindFungible, Amount: big.NewInt(1)})
	if err != domain.ErrEscrowHold {
		t.Fatalf("Hold with empty token = %v, want ErrEscrowHold", err)
	}
}
