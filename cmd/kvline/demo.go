package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pior/kvline"
)

func runDemo(ctx context.Context, client *kvline.Client, cfg kvline.Config, out io.Writer) error {
	if err := basicDemo(ctx, client, out); err != nil {
		return fmt.Errorf("basic demo: %w", err)
	}
	if err := scopedDemo(ctx, cfg, out); err != nil {
		return fmt.Errorf("scoped demo: %w", err)
	}
	if err := errorHandlingDemo(ctx, client, out); err != nil {
		return fmt.Errorf("error handling demo: %w", err)
	}
	return nil
}

func basicDemo(ctx context.Context, client *kvline.Client, out io.Writer) error {
	fmt.Fprintln(out, "=== Basic Example ===")

	fmt.Fprintln(out, "\n1. Storing values...")
	pairs := [][2]string{
		{"username", "Alice"},
		{"email", "alice@example.com"},
		{"age", "25"},
	}
	for _, kv := range pairs {
		if _, err := client.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "   [OK] Stored %d key-value pairs\n", len(pairs))

	fmt.Fprintln(out, "\n2. Retrieving values...")
	for _, kv := range pairs {
		item, err := client.Get(ctx, kv[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "   %s: %s\n", item.Key, describeItem(item))
	}

	fmt.Fprintln(out, "\n3. Checking existence...")
	for _, key := range []string{"username", "phone"} {
		exists, err := client.Exists(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "   '%s' exists: %t\n", key, exists)
	}

	fmt.Fprintln(out, "\n4. Getting non-existent key...")
	item, err := client.Get(ctx, "nonexistent")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   Result: %s\n", describeItem(item))

	fmt.Fprintln(out, "\n5. Deleting a key...")
	deleted, err := client.Delete(ctx, "username")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   Deleted 'username': %t\n", deleted)
	exists, err := client.Exists(ctx, "username")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   'username' still exists: %t\n", exists)

	fmt.Fprintln(out, "\n6. Deleting non-existent key...")
	deleted, err = client.Delete(ctx, "nonexistent")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   Result: %t\n", deleted)

	return nil
}

func scopedDemo(ctx context.Context, cfg kvline.Config, out io.Writer) error {
	fmt.Fprintln(out, "\n=== Scoped Connection Example ===")

	err := kvline.With(ctx, cfg, func(c *kvline.Client) error {
		if _, err := c.Set(ctx, "language", "Go"); err != nil {
			return err
		}
		if _, err := c.Set(ctx, "project", "kvline"); err != nil {
			return err
		}

		for _, key := range []string{"language", "project"} {
			item, err := c.Get(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", key, describeItem(item))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "[OK] Connection closed automatically")
	return nil
}

func errorHandlingDemo(ctx context.Context, client *kvline.Client, out io.Writer) error {
	fmt.Fprintln(out, "\n=== Error Handling Example ===")

	steps := []struct {
		title string
		call  func() error
	}{
		{"Trying to set empty key", func() error {
			_, err := client.Set(ctx, "", "value")
			return err
		}},
		{"Trying to set key with spaces", func() error {
			_, err := client.Set(ctx, "my key", "value")
			return err
		}},
		{"Trying to get empty key", func() error {
			_, err := client.Get(ctx, "")
			return err
		}},
	}

	for i, step := range steps {
		fmt.Fprintf(out, "\n%d. %s...\n", i+1, step.title)
		err := step.call()
		if !errors.Is(err, kvline.ErrInvalidArgument) {
			return fmt.Errorf("%s: expected invalid argument, got %v", step.title, err)
		}
		fmt.Fprintf(out, "   [OK] Caught error: %v\n", err)
	}

	return nil
}

func describeItem(item kvline.Item) string {
	if !item.Found {
		return "<not found>"
	}
	return item.Value
}
