package templates

import (
	"html/template"
	"log"
)

// assembles the master template for the whole web ui. each view in
// this package registers under the name of its .model.go file. the
// function map entries that hit the database or the cache live on
// UserLibrary, which is why this takes one.
func LoadTemplate(lib *UserLibrary) *template.Template {
	var err error = nil
	masterTemplate := template.New("").Funcs(template.FuncMap{
		"showUser": lib.ShowUser,
		"showUsers": lib.ShowUsers,
		"nickname": lib.Nickname,
		"nicknames": lib.Nicknames,
		"urlappendViewSettings": lib.UrlappendViewSettings,
		"toFuzzyTime": toFuzzyTime,
		"toPreciseTime": toPreciseTime,
		"firstLine": firstLine,
		"renderMarkdown": renderMarkdown,
		"add": add,
	})
	for name, view := range map[string]string{
		"_header": headerView,
		"_redirect-with-message": redirectWithMessageView,
		"index": indexView,
		"review": reviewView,
		"new-review": newReviewView,
		"login": loginView,
		"registration": registrationView,
		"user": userView,
		"setting": settingView,
		"error": errorView,
		"maintenance-notice": maintenanceNoticeView,
		"shutdown-notice": shutdownNoticeView,
		"private-notice": privateNoticeView,
	} {
		_, err = masterTemplate.New(name).Parse(view)
		if err != nil { log.Fatalf("Failed to parse template %s: %s", name, err.Error()) }
	}
	return masterTemplate
}
