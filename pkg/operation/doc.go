/*
Package operation runs a rule pipeline over an ordered list of files.

	+-------------+
	|  Retrofit   |
	|   (Batch)   |
	+------+------+
	       |
	+------+------+
	|   Process   |
	|  (One file) |
	+------+------+

🎯 Purpose:
- Walks the configured paths one at a time, in order
- Runs the text pipeline on each file
- Hands writes to the status package, which backs up before it writes
- Reports one outcome per file and a summary for the batch

🔄 Flow:
1. Check the file exists, else NotFound
2. Read it and run the pipeline
3. No change means Unchanged and nothing is written
4. Otherwise Commit (backup, then target) and report Modified
5. Any failure along the way is Error for that file only

⚡ Guarantees:
- One file's failure, even a panic, never stops the batch
- Cancelling the context reports the remaining files as errors
- Summary counts always add up to the number of paths
- Dry runs never touch the filesystem and carry a diff instead

🔍 Example:

	run, err := operation.NewRetrofit(operation.Options{
		Paths:       cfg.Files,
		Transformer: text.NewPipeline(set),
		Files:       status.New(cfg.BaseDir, cfg.BackupSuffix),
	})
	report := run.Run(ctx)
*/
package operation
