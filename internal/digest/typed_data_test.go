package digest

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func testDomain() SigningDomain {
	return SigningDomain{
		Name:              "AgreementKit",
		Version:           "1",
		ChainID:           31337,
		VerifyingContract: common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}
}

// Golden vector: the typed-data digest of a fixed offer and domain is pinned
// to a constant, so a schema or domain-encoding change trips here instead of
// silently invalidating outstanding signatures.
func TestSigningDigestGoldenVector(t *testing.T) {
	const want = "0xeb18372215f0b90f453b28e8331ac559b3f02a7ccd313d7210b9e696f386a7db"
	got, err := SigningDigest(sampleOffer(), testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	if got.Hex() != want {
		t.Fatalf("signing digest = %s, want %s", got.Hex(), want)
	}
}

func TestSigningDigestDeterministic(t *testing.T) {
	a, err := SigningDigest(sampleOffer(), testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	b, err := SigningDigest(sampleOffer(), testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	if a != b {
		t.Fatalf("same offer produced different signing digests: %s vs %s", a.Hex(), b.Hex())
	}
}

func TestSigningDigestDomainSeparation(t *testing.T) {
	base, err := SigningDigest(sampleOffer(), testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}

	mutations := map[string]func(d *SigningDomain){
		"name":              func(d *SigningDomain) { d.Name = "OtherKit" },
		"version":           func(d *SigningDomain) { d.Version = "2" },
		"chainId":           func(d *SigningDomain) { d.ChainID = 1 },
		"verifyingContract": func(d *SigningDomain) { d.VerifyingContract = common.HexToAddress("0x5555") },
	}
	for field, mutate := range mutations {
		dom := testDomain()
		mutate(&dom)
		got, err := SigningDigest(sampleOffer(), dom)
		if err != nil {
			t.Fatalf("SigningDigest(%s): %v", field, err)
		}
		if got == base {
			t.Errorf("changing domain %s did not change the signing digest", field)
		}
	}
}

// The delegate participates in the signed message but not in the offer id:
// signatures pin the delegate, ids stay content-addressed on exchange terms.
func TestDelegateInDigestNotInID(t *testing.T) {
	plain := sampleOffer()
	delegated := sampleOffer()
	delegated.DelegatedTo = common.HexToAddress("0x6666666666666666666666666666666666666666")

	if ComputeOfferID(plain) != ComputeOfferID(delegated) {
		t.Fatal("delegate must not participate in the offer id")
	}

	a, err := SigningDigest(plain, testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	b, err := SigningDigest(delegated, testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	if a == b {
		t.Fatal("delegate must participate in the signing digest")
	}
}

func TestSigningDigestDiffersFromOfferID(t *testing.T) {
	offer := sampleOffer()
	signingDigest, err := SigningDigest(offer, testDomain())
	if err != nil {
		t.Fatalf("SigningDigest: %v", err)
	}
	if signingDigest == ComputeOfferID(offer) {
		t.Fatal("signing digest and offer id must never coincide")
	}
}

func TestComputeDisputeID(t *testing.T) {
	claimant := common.HexToAddress("0x7777777777777777777777777777777777777777")
	offerID := common.HexToHash("0x88")

	base := ComputeDisputeID(claimant, 1700000000, offerID, "ipfs://QmEvidence")
	const want = "0xfc3baa58d770109c5efb42b10b26d4bda56a947bebd1bdd28ab0aab43e397865"
	if base.Hex() != want {
		t.Fatalf("dispute id = %s, want %s", base.Hex(), want)
	}
	if got := ComputeDisputeID(claimant, 1700000000, offerID, "ipfs://QmEvidence"); got != base {
		t.Fatal("dispute id is not deterministic")
	}
	if got := ComputeDisputeID(claimant, 1700000001, offerID, "ipfs://QmEvidence"); got == base {
		t.Error("creation time does not participate in the dispute id")
	}
	if got := ComputeDisputeID(claimant, 1700000000, common.Hash{}, "ipfs://QmEvidence"); got == base {
		t.Error("offer id does not participate in the dispute id")
	}
	if got := ComputeDisputeID(claimant, 1700000000, offerID, "ipfs://QmOther"); got == base {
		t.Error("evidence URI does not participate in the dispute id")
	}
}
