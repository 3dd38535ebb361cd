/*
Package spritebot reads and writes SpriteBot sprites.

A sprite is an AnimData.xml document plus three sheets per animation:
{name}-Anim (colors), {name}-Shadow (one white pixel per frame marking the
shadow anchor) and {name}-Offsets (colored marker pixels for the head,
hands and body center). Every sheet is a grid of FrameWidth x FrameHeight
cells, one row ("line") per direction.

Read slices the sheets into frames and turns marker pixels into typed
offsets. Write packs frames back into the smallest common cell, stamps the
markers and regenerates the metadata. Files go through a Storage (a
directory, a .tar.lz4 bundle or memory) and sheets through a SheetCodec
(PNG or EDDS).
*/
package spritebot
