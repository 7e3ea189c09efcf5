package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/osvaldoandrade/typedef/pkg/typedefsdk"
)

const schemaJSON = `{
	"definitions": {
		"phone": {"type": "string"}
	},
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "uint32"},
		"phones": {"elements": {"ref": "phone"}}
	},
	"optionalProperties": {
		"createdAt": {"type": "timestamp"}
	}
}`

func main() {
	cfg := typedefsdk.DefaultConfig()
	cfg.LogLevel = "debug"

	client, err := typedefsdk.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new client: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	schema, err := client.Compile(ctx, []byte(schemaJSON))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		os.Exit(1)
	}

	instances := []string{
		`{"name":"Ada","age":43,"phones":["+44 1234567"],"createdAt":"1990-12-31T23:59:60Z"}`,
		`{"age":"43","phones":["+44 1234567",12]}`,
	}

	for _, instance := range instances {
		errs, err := schema.Validate(ctx, []byte(instance))
		if err != nil {
			fmt.Fprintf(os.Stderr, "validate: %v\n", err)
			os.Exit(1)
		}
		if len(errs) == 0 {
			fmt.Printf("valid: %s\n", instance)
			continue
		}
		fmt.Printf("invalid: %s\n", instance)
		for _, e := range errs {
			fmt.Printf("  instance=/%s schema=/%s\n",
				strings.Join(e.InstancePath, "/"), strings.Join(e.SchemaPath, "/"))
		}
	}
}
