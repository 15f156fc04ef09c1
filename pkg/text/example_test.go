package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/retrofit/pkg/rule"
	"github.com/walteh/retrofit/pkg/text"
)

func ExamplePipeline_Transform() {
	set, err := rule.Backend(rule.BackendOptions{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	pipeline := text.NewPipeline(set)

	content := strings.NewReader("import { prisma } from '@/lib/prisma'\n\nconst n = await prisma.order.count()\n")

	result, err := pipeline.Transform(context.Background(), "app/api/stats/route.tsx", content)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(string(result.ModifiedContent))
	fmt.Printf("Applied: %v\n", result.AppliedRules())
	fmt.Printf("Rewrites: %d\n", result.RewriteCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// import { prisma } from '@/lib/prisma'
	// import { withPrismaTimeout, handleTimeoutError, TimeoutError } from '@/lib/timeout'
	//
	// const n = await withPrismaTimeout(prisma.order.count(), 5000)
	// Applied: [timeout-import query-wrap]
	// Rewrites: 2
	// Was Modified: true
}

func ExampleDiff() {
	fmt.Print(text.Diff("a\nold\nc\n", "a\nnew\nc\n"))

	// Output:
	// - old
	// + new
}
