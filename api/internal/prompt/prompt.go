// Package prompt builds the instruction document sent to the generative model.
package prompt

import "fmt"

const template = "You are an expert academic assistant specializing in summarizing handwritten student notes.\n" +
	"Your task is to analyze the raw, extracted text from a set of notes, which are related to the subject: **%s**,\n" +
	"and deliver a professional, highly detailed, and comprehensive narrative summary in **%s**.\n\n" +
	"### Key Requirements for the Summary:\n\n" +
	"1. **Structure and Format:** The summary MUST be provided in **continuous, distinct paragraph format**.\n" +
	"2. **Format Restriction:** **ABSOLUTELY DO NOT** use headings, bullet points (*), numbered lists, or any Markdown formatting other than basic paragraph breaks and **bolding/italics** for key terms if necessary.\n" +
	"3. **Content:** Focus on extracting the core academic information, definitions, formulas, key concepts, and relationships described, and present them in a coherent flow.\n" +
	"4. **Tone:** Maintain a clear, objective, and academic tone suitable for formal study material.\n\n" +
	"### Summary Instructions in %s:\n\n" +
	"%s\n\n" +
	"### Extracted Notes for Summarization:\n\n" +
	"```text\n" +
	"%s\n" +
	"```\n\n" +
	"Please begin the summary immediately below this instruction block. Do not include any introductory sentences or preamble before the first paragraph."

// Build returns the full instruction for summarizing extractedText about subject
// in language. The notes are embedded verbatim.
func Build(extractedText, language, subject string) string {
	return fmt.Sprintf(template, subject, language, language, Instruction(language), extractedText)
}
