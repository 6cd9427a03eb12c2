package main

import (
	"context"
	"fmt"
	"os"

	notion "github.com/nyoungstudios/notion.go"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

type title struct {
	PlainText string `json:"plain_text"`
}

type Database struct {
	ID    string  `json:"id"`
	Title []title `json:"title"`
}

func (d Database) Name() string {
	var name string
	for _, t := range d.Title {
		name += t.PlainText
	}
	return name
}

func main() {
	// NOTION_TOKEN is read from the environment or a .env file
	client, err := notion.ClientFromEnv(notion.WithLogger(nil))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	me, err := client.Users.Me(ctx)
	if err != nil {
		panic(err)
	}
	var bot struct {
		Name string `json:"name"`
	}
	if err := me.Decode(&bot); err != nil {
		panic(err)
	}
	fmt.Printf("Signed in as %s\n", bot.Name)

	// Search the databases shared with the integration, 10 per request
	p, err := client.Search(ctx, models.Params{
		"filter":    map[string]any{"property": "object", "value": "database"},
		"page_size": 10,
	})
	if err != nil {
		panic(err)
	}

	var databases []Database
	for page, err := range p.All(ctx) {
		if err != nil {
			panic(err)
		}
		var list struct {
			Results []Database `json:"results"`
		}
		if err := page.Decode(&list); err != nil {
			panic(err)
		}
		databases = append(databases, list.Results...)
	}
	fmt.Printf("Found %d databases in %d requests\n", len(databases), p.Fetches()+1)

	if len(databases) == 0 {
		os.Exit(0)
	}

	// Count the rows of the first database
	rows, err := client.Databases.Query(ctx, databases[0].ID, models.Params{"page_size": 100})
	if err != nil {
		panic(err)
	}
	var count int
	for _, err := range rows.Results(ctx) {
		if err != nil {
			panic(err)
		}
		count++
	}
	fmt.Printf("%s has %d rows\n", databases[0].Name(), count)
}
