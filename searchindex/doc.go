/*
Package searchindex holds the in-memory implementor index a documentation
site serves navigation lookups from.

The Index is a mailbox consumer: it attaches to per-trait mailboxes, drains
whatever tables were published before it initialized, and receives later
publishes directly.

	ix := searchindex.New()
	ix.AttachTraits()

	table, ok := ix.Lookup("tower::Service")
	traits := ix.TraitsImplementedIn("tower_layer")

Rendering the descriptors into pages is out of scope here; the index stores
them as the opaque strings they arrived as.
*/
package searchindex
