package testutils

import "encoding/json"

// Payloads as returned by the Text United API, used across package tests

const (
	ProjectID        = 8766
	SecondProjectID  = 8767
	TranslatedFileID = 156148
	PendingFileID    = 156155

	JohnEmail = "john.doe@example.com"
	JaneEmail = "jane.doe@example.com"

	// HelloWorld and HelloWorldBase64 are the same file content, raw and encoded
	HelloWorld       = "hello_world"
	HelloWorldBase64 = "aGVsbG9fd29ybGQ="
)

// ProjectJSON is a single project object
const ProjectJSON = `{
	"Id": 8766,
	"Name": "WebApplication1",
	"Description": "PL to EN",
	"CreationDateUtc": "2015-10-12T22:00:15.085Z",
	"SourceLanguageId": 92,
	"TargetLanguageId": 39,
	"SourceLanguageCode": "pl-PL",
	"TargetLanguageCode": "en-US",
	"StartDateUtc": "2015-10-12T22:00:15.085Z",
	"EndDateUtc": "2015-10-13T20:00:15.085199Z",
	"State": "In progress",
	"OwnerId": 111999,
	"OwnerName": "John Doe",
	"ManagerId": 111999,
	"ManagerName": "John Doe",
	"Progress": 0,
	"TranslationProgress": 0,
	"ProofreadingProgress": -1,
	"ReferenceNumber": "REF-1"
}`

// SecondProjectJSON is a project with no end date
const SecondProjectJSON = `{
	"Id": 8767,
	"Name": "WebApplication1",
	"Description": "PL to KA",
	"CreationDateUtc": "2015-10-12T22:00:15Z",
	"SourceLanguageId": 92,
	"TargetLanguageId": 52,
	"SourceLanguageCode": "pl-PL",
	"TargetLanguageCode": "ka-GE",
	"StartDateUtc": "2015-10-12T22:00:15Z",
	"EndDateUtc": null,
	"State": "In progress",
	"OwnerId": 111999,
	"OwnerName": "John Doe",
	"ManagerId": 112000,
	"ManagerName": "Jane Doe",
	"Progress": 10,
	"TranslationProgress": 20,
	"ProofreadingProgress": -1,
	"ReferenceNumber": ""
}`

// ProjectsJSON is the project list holding both projects
const ProjectsJSON = "[" + ProjectJSON + "," + SecondProjectJSON + "]"

// AccountsJSON is the employee list. Jane has an empty phone and no position.
const AccountsJSON = `[
	{
		"Id": 111999,
		"Email": "john.doe@example.com",
		"FirstName": "John",
		"LastName": "Doe",
		"Phone": "+48 32 917 947",
		"Position": "System admin"
	},
	{
		"Id": 112000,
		"Email": "jane.doe@example.com",
		"FirstName": "Jane",
		"LastName": "Doe",
		"Phone": "",
		"Position": null
	}
]`

// FilesJSON is the file list of ProjectID. Only the first file is translated.
const FilesJSON = `[
	{
		"FileId": 156148,
		"Filename": "Resources.resx",
		"Subdir": "",
		"FileSize": 6991,
		"Words": 28,
		"Status": "Translated"
	},
	{
		"FileId": 156155,
		"Filename": "test.xml",
		"Subdir": "subdir\\subdir2\\target\\",
		"FileSize": 620897,
		"Words": 1066,
		"Status": "Preprocessed"
	}
]`

// FileContentJSON is a content download holding HelloWorld
const FileContentJSON = `{"Content": "aGVsbG9fd29ybGQ="}`

// Raw wraps a payload constant as json.RawMessage
func Raw(payload string) json.RawMessage {
	return json.RawMessage(payload)
}
