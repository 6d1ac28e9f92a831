// Package puzzle loads boards from HCL puzzle files.
//
// A puzzle file may name the dictionary to use, fix the board size, and
// declare any number of labelled board blocks:
//
//	dictionary = "words/fi.txt"
//	size       = 4
//
//	board "morning" {
//	  rows = ["kiss", "alat", "xxxx", "xxxx"]
//	}
//
//	board "evening" {
//	  rows      = split("/", "KISS/ALAT/XXXX/XXXX")
//	  fold_case = true
//	}
//
// A board may also carry a words attribute listing the words a previous run
// found, which is how solved output written in HCL reads back in.
//
// rows accepts a list of strings, a tuple, or one string of
// whitespace-separated rows. The functions lower, upper, split, join and
// trimspace are available inside expressions, and env maps the process
// environment, e.g. dictionary = env.GRIDWORDS_DICT. Relative dictionary paths
// resolve against the directory of the file that declares them.
package puzzle
