/*
Package viewstate owns what the flashcard screen shows.

State records the current card, the tense selected in each of the two tab
groups (conjugations and example sentences), whether the card is flipped and
the error banner text. Controller is the only writer of State; each method
updates State and then re-projects the affected part of the Surface.

Surface is a plain value: faces, counter, goto bound, banner, two tab groups
and two lists. Renderers draw it and never read State directly, so a render is
always a deterministic projection of the last mutation.
*/
package viewstate
