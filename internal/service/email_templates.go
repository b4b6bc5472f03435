package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Write down your first dream and we'll turn it into a plan of concrete tasks.

Get started: %s

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func emailChangeNotificationTemplate(name, newEmail, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s email address was changed", appName)
	body := fmt.Sprintf(`Hi %s,

The email address on your account was changed to: %s

If you didn't make this change, your account may be compromised. Please contact support immediately.

Best,
The %s Team`, name, newEmail, appName)

	return subject, body
}

