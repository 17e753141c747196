package elem2keitaro_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	elem2keitaro "github.com/alnah/go-elem2keitaro"
)

func Example() {
	conv, err := elem2keitaro.NewConverter()
	if err != nil {
		log.Fatal(err)
	}

	doc := []byte(`{"content":[{"elType":"widget","widgetType":"button","settings":{"text":"Buy now"}}]}`)
	bundle := conv.ConvertJSON(context.Background(), doc)
	if bundle.Failed() {
		log.Fatal(bundle.Err)
	}

	fmt.Println(strings.Contains(bundle.HTML, `href="{offer_url}"`))
	fmt.Println(strings.Contains(bundle.HTML, "Buy now"))
	fmt.Println(len(bundle.Assets))
	// Output:
	// true
	// true
	// 0
}

func ExampleConverter_ConvertJSON_invalid() {
	conv, err := elem2keitaro.NewConverter()
	if err != nil {
		log.Fatal(err)
	}

	bundle := conv.ConvertJSON(context.Background(), []byte("{not json"))
	fmt.Println(bundle.Failed())
	fmt.Println(bundle.CSS == "")
	// Output:
	// true
	// true
}
