package tagref_test

import (
	"fmt"

	"github.com/harrylevesque/nfcnav/internal/tagref"
)

func ExampleEncode() {
	ref, err := tagref.Encode(tagref.ScannedTag{
		ID:           "04A2B3",
		Payload:      "hello",
		IsWritable:   true,
		IDBytes:      4,
		PayloadBytes: 5,
		TechTypes:    []string{"NfcA", "MifareClassic"},
		MaxSize:      144,
		Type:         "NDEF",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ref.Path())

	// Output:
	// /nfc-detail/04A2B3/hello/true/4/5/NfcA%2BMifareClassic/144/NDEF
}

func ExampleDecodePath() {
	tag, err := tagref.DecodePath("/nfc-detail/04A2B3/hello/true/4/5/NfcA%2BMifareClassic/144/NDEF")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(tag.ID, tag.TechTypes, tag.MaxSize)

	_, err = tagref.DecodePath("/nfc-detail/04A2B3/hello/yes/4/5/NfcA/144/NDEF")
	fmt.Println(err)

	// Output:
	// 04A2B3 [NfcA MifareClassic] 144
	// tagref: malformed isWritable "yes": want "true" or "false"
}
