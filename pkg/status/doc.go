/*
Package status manages file storage, backups and outcome tracking for retrofit.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Outcomes|
	| (Backups) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads and writes target files under a base directory
- Writes a byte-exact backup before any target is overwritten
- Restores targets from their backups
- Names per-file outcomes and counts them into a summary

🔄 Flow:
1. Operation reads a target through ReadFile
2. Pipeline produces new content
3. Commit writes the backup, then the target, both atomically
4. Operation records the Outcome in a Summary

⚡ Guarantees:
- A target is never written before its backup exists
- A failed backup leaves the target untouched
- Writes go through a temp file and a rename, so readers never see half a file
- Summary counts always add up to the total

🔍 Example:

	mgr := status.New(baseDir, status.DefaultBackupSuffix)

	original, err := mgr.ReadFile(ctx, "app/orders/page.tsx")
	backup, err := mgr.Commit(ctx, "app/orders/page.tsx", original, modified)

	var sum status.Summary
	sum.Add(status.OutcomeModified)
*/
package status
