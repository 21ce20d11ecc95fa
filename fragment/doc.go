/*
Package fragment reads the generated implementor artifacts a documentation
compiler emits.

Each artifact belongs to one trait and carries a literal table mapping a
library name to the formatted descriptors of that library's implementing
types. The artifact wraps the table in a small registration script; this
package extracts the table and leaves the wrapper behind. Descriptor strings
pass through untouched, markup and all.

	table, err := fragment.ParseFile("docs/implementors/tower/trait.Service.js")

LoadDir collects every trait's table from a docs output tree:

	tables, err := fragment.LoadDir("docs")
	for trait, table := range tables {
	    registry.MailboxFor(trait).Publish(table)
	}

Producing the artifacts is the docs compiler's job; this package only
consumes them.
*/
package fragment
