package notion_test

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	notion "github.com/nyoungstudios/notion.go"
	"github.com/nyoungstudios/notion.go/internal/fakenotion"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

func ExampleDatabases_Query() {
	server := fakenotion.New()
	defer server.Close()

	db := server.AddDatabase("Tasks", nil)
	for _, name := range []string{"write", "review", "ship"} {
		server.AddRow(db, map[string]any{"Name": name})
	}

	client, err := notion.New(fakenotion.DefaultToken,
		notion.WithBaseURL(server.Start()),
		notion.WithLogger(nil),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	p, err := client.Databases.Query(ctx, db, models.Params{"page_size": 2})
	if err != nil {
		panic(err)
	}

	for page, err := range p.All(ctx) {
		if err != nil {
			panic(err)
		}
		results, err := page.Results()
		if err != nil {
			panic(err)
		}
		hasMore, _ := page.HasMore()
		fmt.Printf("page with %d results, has_more=%v\n", len(results), hasMore)
	}

	// Output:
	// page with 2 results, has_more=true
	// page with 1 results, has_more=false
}

func ExampleClient_Search() {
	server := fakenotion.New()
	defer server.Close()

	server.AddPage("", "Weekly sync")
	server.AddPage("", "Reading list")

	client, err := notion.New(fakenotion.DefaultToken,
		notion.WithBaseURL(server.Start()),
		notion.WithLogger(nil),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	p, err := client.Search(ctx, models.Params{"query": "sync"})
	if err != nil {
		panic(err)
	}

	for result, err := range p.Results(ctx) {
		if err != nil {
			panic(err)
		}
		var object struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(result, &object); err != nil {
			panic(err)
		}
		fmt.Println(object.Object)
	}

	// Output:
	// page
}

func ExampleUsers_Me() {
	server := fakenotion.New()
	defer server.Close()

	client, err := notion.New(fakenotion.DefaultToken,
		notion.WithBaseURL(server.Start()),
		notion.WithLogger(nil),
	)
	if err != nil {
		panic(err)
	}

	me, err := client.Users.Me(context.Background())
	if err != nil {
		panic(err)
	}

	var user struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := me.Decode(&user); err != nil {
		panic(err)
	}
	fmt.Println(user.Type, user.Name)

	// Output:
	// bot Fake Integration
}
