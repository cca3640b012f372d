// Package executor turns flat, paginated row scans into streams of
// documents: maximal contiguous runs of rows sharing a primary-key prefix.
//
// The pipeline is pull-driven end to end. Pages are fetched from the row
// source one at a time and only when the consumer asks for another
// document; a document is emitted the moment the first row of the next
// document (or end of data) proves its boundary. Each emitted document
// carries a paging token that resumes the scan immediately after it.
package executor
