// Package isobox decodes the box structure of ISO base media files
// (ISOBMFF: MP4, M4A, fragmented MP4 segments).
//
// A buffer is walked as a sequence of length-prefixed, type-tagged boxes.
// Container boxes (moov, trak, mdia, minf, stbl, mvex, moof, traf) are
// descended into; a few leaf boxes (ftyp, mvhd, mfhd) are decoded into
// fields; every other box is reported as an opaque span.
//
// # Quick Start
//
// Dissecting a buffer already in memory:
//
//	tree := isobox.NewTree()
//	res := isobox.Dissect(buf, tree)
//	if !res.Accepted {
//		return errors.New("not an MP4 buffer")
//	}
//	tree.WriteText(os.Stdout, isobox.DefaultTextOptions())
//
// Inspecting a file:
//
//	file, err := isobox.Inspect("clip.mp4")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s: %d boxes, %d bytes\n", file.Path, file.Boxes, file.Consumed)
//
// # Reporting
//
// Decoded structure goes to a Reporter, written in pre-order and never read
// back. Tree is the bundled implementation; hosts with their own protocol
// tree implement Reporter and Node instead.
//
// # Error Handling
//
// Dissection is best-effort and never fails on malformed input:
//
//   - A header that is truncated or declares a size below 8 bytes stops
//     traversal of the scope it is in; everything reported before stands.
//   - Siblings are positioned by declared size, so corruption inside a
//     container does not shift the boxes after it.
//   - A leaf payload shorter than its fixed fields is reported as malformed.
//
// Each of these is recorded as a Warning. Input whose first box type is not
// a known box type is declined: nothing is reported and Result.Accepted is
// false.
//
// # Media Types
//
// The decoder is registered for "video/mp4". DissectMediaType dispatches by
// content type, for hosts that classify payloads before decoding them.
package isobox
