package mcpserver

// Reference describes the document shapes and error messages returned by
// the tools, so LLM consumers can interpret results without trial and error.
const Reference = `# Noteful Reference

## Documents

- Folder: {"id", "name", "createdAt", "updatedAt"}. Names are unique.
- Tag: {"id", "name", "createdAt", "updatedAt"}. Read-only.
- Note: {"id", "title", "content", "folderId"?, "createdAt", "updatedAt"}.

Identifiers are 24-character hex strings.

## Ordering

Folders and tags are listed by name in byte order (uppercase before lowercase).
Notes are listed in creation order.

## Errors

- "the ` + "`id`" + ` is not valid": malformed identifier; nothing was read or written.
- "not found": well-formed identifier with no matching document.
- "missing ` + "`name`" + ` in request body": create_folder without a name.
- "the folder name already exists": another folder already uses that name.
`
