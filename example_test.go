package chat2md_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-chat2md"
)

// Example converts a saved chat page to Markdown.
func Example() {
	page := `<title>Greeting</title>
<div class="text-base"><img src="me.png"><div class="whitespace-pre-wrap">Say hi_there</div></div>
<div class="text-base"><div class="whitespace-pre-wrap"><p><b>Hi</b> there</p></div></div>`

	tr, err := chat2md.NewHTMLSource(strings.NewReader(page)).Transcript(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc, err := chat2md.NewConverter().Convert(context.Background(), tr)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(doc.FileName)
	fmt.Print(doc.Body)
	// Output:
	// Greeting.md
	// # Greeting
	//
	// **User:** <br>
	// Say hi\_there
	//
	// ***
	//
	// **Assistant:** <br>
	// **Hi** there
}
