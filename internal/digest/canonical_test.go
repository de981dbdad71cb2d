package digest

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hazbase/kit/internal/domain"
)

func sampleOffer() *domain.Offer {
	return &domain.Offer{
		Issuer:   common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Investor: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Asset: domain.AssetRef{
			Kind:      domain.KindBondUnit,
			Token:     common.HexToAddress("0x3333333333333333333333333333333333333333"),
			Partition: common.HexToHash("0x04"),
			TokenID:   big.NewInt(7),
			Amount:    big.NewInt(1000),
			ClassID:   big.NewInt(2),
			NonceID:   big.NewInt(5),
		},
		DocumentHash: common.HexToHash("0xaa"),
		DocumentURI:  "ipfs://QmOfferDoc",
		Expiry:       time.Unix(1900000000, 0),
		Nonce:        42,
	}
}

// Golden vector: the canonical layout is a frozen wire contract, so the id of
// a fixed field set is pinned to a constant. If this fails, the encoding
// changed and every previously derived id is invalid.
func TestComputeOfferIDGoldenVector(t *testing.T) {
	const want = "0x2a531fb5a65a0a8ecb7991f62821844d65c04354893e384f35d6a7bce24445cb"
	if got := ComputeOfferID(sampleOffer()); got.Hex() != want {
		t.Fatalf("offer id = %s, want %s", got.Hex(), want)
	}
}

func TestComputeOfferIDDeterministic(t *testing.T) {
	a := ComputeOfferID(sampleOffer())
	b := ComputeOfferID(sampleOffer())
	if a != b {
		t.Fatalf("same fields produced different ids: %s vs %s", a.Hex(), b.Hex())
	}
	if a == (common.Hash{}) {
		t.Fatal("id must not be the zero hash")
	}
}

func TestComputeOfferIDFieldSensitivity(t *testing.T) {
	base := ComputeOfferID(sampleOffer())

	mutations := map[string]func(o *domain.Offer){
		"issuer":       func(o *domain.Offer) { o.Issuer = common.HexToAddress("0xdead") },
		"investor":     func(o *domain.Offer) { o.Investor = common.HexToAddress("0xbeef") },
		"token":        func(o *domain.Offer) { o.Asset.Token = common.HexToAddress("0xcafe") },
		"partition":    func(o *domain.Offer) { o.Asset.Partition = common.HexToHash("0x99") },
		"tokenId":      func(o *domain.Offer) { o.Asset.TokenID = big.NewInt(8) },
		"amount":       func(o *domain.Offer) { o.Asset.Amount = big.NewInt(1001) },
		"classId":      func(o *domain.Offer) { o.Asset.ClassID = big.NewInt(3) },
		"nonceId":      func(o *domain.Offer) { o.Asset.NonceID = big.NewInt(6) },
		"documentHash": func(o *domain.Offer) { o.DocumentHash = common.HexToHash("0xbb") },
		"documentURI":  func(o *domain.Offer) { o.DocumentURI = "ipfs://QmOther" },
		"expiry":       func(o *domain.Offer) { o.Expiry = o.Expiry.Add(time.Second) },
		"nonce":        func(o *domain.Offer) { o.Nonce++ },
	}

	for field, mutate := range mutations {
		offer := sampleOffer()
		mutate(offer)
		if got := ComputeOfferID(offer); got == base {
			t.Errorf("changing %s did not change the offer id", field)
		}
	}
}

// Addresses in different structural positions must not be swappable. This is
// what the tag bytes buy: issuer=A/investor=B never collides with
// issuer=B/investor=A.
func TestComputeOfferIDAddressPositions(t *testing.T) {
	a := sampleOffer()
	b := sampleOffer()
	b.Issuer, b.Investor = a.Investor, a.Issuer
	if ComputeOfferID(a) == ComputeOfferID(b) {
		t.Fatal("swapping issuer and investor produced a colliding id")
	}
}

func TestEncodeCanonicalLayout(t *testing.T) {
	offer := sampleOffer()
	buf := EncodeCanonical(offer)

	// 3 tagged addresses + partition + 4 words + docHash + keccak(uri) + 2 uint64s.
	wantLen := 3*21 + 32 + 4*32 + 32 + 32 + 16
	if len(buf) != wantLen {
		t.Fatalf("canonical buffer length = %d, want %d", len(buf), wantLen)
	}

	if buf[0] != 0x01 {
		t.Errorf("issuer tag = %#x, want 0x01", buf[0])
	}
	if !bytes.Equal(buf[1:21], offer.Issuer.Bytes()) {
		t.Error("issuer bytes not at offset 1")
	}
	if buf[21] != 0x02 {
		t.Errorf("investor tag = %#x, want 0x02", buf[21])
	}
	if buf[42] != 0x03 {
		t.Errorf("token tag = %#x, want 0x03", buf[42])
	}

	// Amount sits in the second 32-byte word after the partition.
	wordStart := 3*21 + 32 + 32
	var amount [32]byte
	offer.Asset.Amount.FillBytes(amount[:])
	if !bytes.Equal(buf[wordStart:wordStart+32], amount[:]) {
		t.Error("amount word not big-endian left-padded at its slot")
	}

	// The URI participates as its keccak hash, keeping the buffer fixed-size.
	uriStart := wantLen - 16 - 32
	if !bytes.Equal(buf[uriStart:uriStart+32], crypto.Keccak256([]byte(offer.DocumentURI))) {
		t.Error("document URI slot is not keccak256(uri)")
	}

	// Nonce is the trailing 8 bytes, big-endian.
	tail := buf[len(buf)-8:]
	if tail[7] != 42 || tail[0] != 0 {
		t.Errorf("nonce tail = %x, want big-endian 42", tail)
	}
}

func TestNilWordsEncodeAsZero(t *testing.T) {
	a := sampleOffer()
	a.Asset.TokenID = nil
	b := sampleOffer()
	b.Asset.TokenID = big.NewInt(0)
	if ComputeOfferID(a) != ComputeOfferID(b) {
		t.Fatal("nil and zero big.Int words must encode identically")
	}
}
